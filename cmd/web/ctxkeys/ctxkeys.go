package ctxkeys

type Key int

const (
	VisitorID Key = iota // string: anonymous visitor id from the cookie
)
