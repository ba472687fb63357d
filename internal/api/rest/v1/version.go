package v1

// BasePath is the URL prefix of the news API.
const BasePath = "/news"
