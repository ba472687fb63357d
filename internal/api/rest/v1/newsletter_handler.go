package v1

import (
	"net/http"
	"sort"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/gin-gonic/gin"
)

// NewsletterHandler defines the interface for handling newsletter catalog endpoints
type NewsletterHandler interface {
	Newsletters(ctx *gin.Context)
	Index(ctx *gin.Context)
}

// newsletterHandler struct holds the services
type newsletterHandler struct {
	newsletters news.NewsletterService
}

// NewNewsletterHandler creates a new NewsletterHandler
func NewNewsletterHandler(newsletters news.NewsletterService) NewsletterHandler {
	return &newsletterHandler{newsletters: newsletters}
}

// Newsletters handles the GET request for the full catalog keyed by slug.
func (handler *newsletterHandler) Newsletters(ctx *gin.Context) {
	catalog, err := handler.newsletters.Catalog(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	response := NewslettersResponse{
		Status:      "ok",
		Newsletters: make(map[string]NewsletterResponse, len(catalog)),
	}
	for slug, newsletter := range catalog {
		response.Newsletters[slug] = newsletterResponse(newsletter)
	}

	ctx.JSON(http.StatusOK, response)
}

// Index handles the GET request for the ordered listing of active newsletters.
func (handler *newsletterHandler) Index(ctx *gin.Context) {
	catalog, err := handler.newsletters.Catalog(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var listing []NewsletterResponse
	for _, newsletter := range catalog {
		if newsletter.Active {
			listing = append(listing, newsletterResponse(newsletter))
		}
	}
	sort.Slice(listing, func(i, j int) bool {
		if listing[i].Order != listing[j].Order {
			return listing[i].Order < listing[j].Order
		}
		return listing[i].Slug < listing[j].Slug
	})

	ctx.JSON(http.StatusOK, ActiveNewslettersResponse{Status: "ok", Newsletters: listing})
}

func newsletterResponse(newsletter *news.Newsletter) NewsletterResponse {
	languages := newsletter.Languages
	if languages == nil {
		languages = []string{}
	}
	return NewsletterResponse{
		Slug:        newsletter.Slug,
		Title:       newsletter.Title,
		Description: newsletter.Description,
		Show:        newsletter.Show,
		Active:      newsletter.Active,
		Welcome:     newsletter.Welcome,
		VendorID:    newsletter.VendorID,
		Languages:   languages,
		Order:       newsletter.Order,
	}
}
