package posts

// Scope names the filter for a listing: the whole site, one group, one
// author, or the feed of authors a user follows. Scopes carry no
// presentation or caching concerns; they only select and order posts.
type Scope struct {
	kind     scopeKind
	slug     string
	username string
	userID   string
}

type scopeKind int

const (
	scopeAll scopeKind = iota
	scopeGroup
	scopeAuthor
	scopeFeed
)

func All() Scope {
	return Scope{kind: scopeAll}
}

func ByGroup(slug string) Scope {
	return Scope{kind: scopeGroup, slug: slug}
}

func ByAuthor(username string) Scope {
	return Scope{kind: scopeAuthor, username: username}
}

func FeedOf(userID string) Scope {
	return Scope{kind: scopeFeed, userID: userID}
}
