// Package news holds the domain model of the basket newsletter service:
// subscribers, the newsletter catalog, API users, and the contracts the
// application services and repositories implement.
package news
