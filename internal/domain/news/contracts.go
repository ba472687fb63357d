package news

import (
	"context"
)

// SubscriptionService defines the operations of the subscription lifecycle.
type SubscriptionService interface {
	// Subscribe signs an email up for newsletters, creating the subscriber
	// when it does not exist yet. It returns the subscriber record and
	// whether it was newly created.
	Subscribe(ctx context.Context, req *SubscriptionRequest) (*Subscriber, bool, error)

	// SubscribeSMS signs a North American mobile number up for an SMS message.
	SubscribeSMS(ctx context.Context, mobileNumber, messageName string, optin bool) error

	// Unsubscribe removes newsletters from the subscriber identified by token.
	// An empty slug list with optout set removes everything.
	Unsubscribe(ctx context.Context, token string, newsletters []string, optout bool, reason string) error

	// Confirm marks a pending subscription as confirmed.
	Confirm(ctx context.Context, token string) error

	// GetUser returns the external representation of the subscriber
	// identified by token.
	GetUser(ctx context.Context, token string) (*UserData, error)

	// LookupUserByEmail returns the external representation of the
	// subscriber with the given email address.
	LookupUserByEmail(ctx context.Context, email string) (*UserData, error)

	// UpdateUser merges the given fields into the subscriber identified by
	// token and schedules a vendor sync.
	UpdateUser(ctx context.Context, token string, update *UserUpdate) error

	// SetUnsubReason records the unsubscribe survey answer for a token.
	SetUnsubReason(ctx context.Context, token, reason string) error

	// SetCustomFields stores per-program values (phonebook, student
	// ambassadors) on the subscriber identified by token.
	SetCustomFields(ctx context.Context, token string, fields map[string]string) error
}

// NewsletterService manages the newsletter catalog. Reads are served from an
// invalidating cache; writes go through to storage and clear it.
type NewsletterService interface {
	// Catalog returns every newsletter keyed by slug.
	Catalog(ctx context.Context) (map[string]*Newsletter, error)

	// Slugs returns the set of known newsletter slugs.
	Slugs(ctx context.Context) ([]string, error)

	// Languages returns the union of all newsletter language codes.
	Languages(ctx context.Context) ([]string, error)

	// VendorIDs returns the vendor-side field identifiers of all newsletters.
	VendorIDs(ctx context.Context) ([]string, error)

	Create(ctx context.Context, newsletter *Newsletter) error
	Update(ctx context.Context, newsletter *Newsletter) error
	DeleteBySlug(ctx context.Context, slug string) error
}

// RecoveryService sends "find my subscriptions" messages.
type RecoveryService interface {
	// SendRecoveryMessage schedules a recovery email for a known address.
	SendRecoveryMessage(ctx context.Context, email string) error
}

// SubscriberRepository defines storage operations for subscribers.
type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *Subscriber) error
	GetByEmail(ctx context.Context, email string) (*Subscriber, error)
	GetByToken(ctx context.Context, token string) (*Subscriber, error)
	Update(ctx context.Context, subscriber *Subscriber) error
}

// NewsletterRepository defines storage operations for the newsletter catalog.
type NewsletterRepository interface {
	Create(ctx context.Context, newsletter *Newsletter) error
	GetBySlug(ctx context.Context, slug string) (*Newsletter, error)
	List(ctx context.Context) ([]*Newsletter, error)
	Update(ctx context.Context, newsletter *Newsletter) error
	DeleteBySlug(ctx context.Context, slug string) error
}

// APIUserRepository defines storage operations for API key holders.
type APIUserRepository interface {
	Create(ctx context.Context, user *APIUser) error
	// ValidKey reports whether key belongs to an enabled API user.
	ValidKey(ctx context.Context, key string) (bool, error)
	List(ctx context.Context) ([]*APIUser, error)
}

// TaskDispatcher schedules the asynchronous jobs the API must not block on:
// vendor synchronization, recovery email delivery and SMS subscription.
type TaskDispatcher interface {
	DispatchUserUpdate(ctx context.Context, task *UserUpdateTask) error
	DispatchRecoveryMessage(ctx context.Context, email string) error
	DispatchSMS(ctx context.Context, task *SMSTask) error
}
