package auth

// Role is the closed set of roles a user can carry. The raw string lives
// on the user record and inside JWT claims; everything else goes through
// ParseRole and Capabilities.
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Capability is a named action a role may perform. Endpoints declare the
// capability they require instead of comparing role strings ad hoc.
type Capability string

const (
	// CapManageProducts covers the seller-facing product CRUD surface.
	CapManageProducts Capability = "manage-products"
	// CapManageBlogs covers the author-facing blog CRUD surface.
	CapManageBlogs Capability = "manage-blogs"
	// CapBrowseCatalog covers the storefront product listing.
	CapBrowseCatalog Capability = "browse-catalog"
	// CapBrowseBlogs covers the public blog listing.
	CapBrowseBlogs Capability = "browse-blogs"
	// CapUseCart covers cart retrieval and item mutation.
	CapUseCart Capability = "use-cart"
	// CapReadDetail covers single-record product and blog lookups.
	CapReadDetail Capability = "read-detail"
	// CapComment covers listing and posting blog comments.
	CapComment Capability = "comment"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleGuest: {
		CapBrowseCatalog: true,
		CapBrowseBlogs:   true,
		CapUseCart:       true,
		CapReadDetail:    true,
		CapComment:       true,
	},
	RoleUser: {
		CapManageProducts: true,
		CapManageBlogs:    true,
		CapUseCart:        true,
		CapReadDetail:     true,
		CapComment:        true,
	},
	RoleAdmin: {
		CapManageProducts: true,
		CapManageBlogs:    true,
		CapBrowseCatalog:  true,
		CapBrowseBlogs:    true,
		CapUseCart:        true,
		CapReadDetail:     true,
		CapComment:        true,
	},
}

// ParseRole maps a raw role string to a Role, defaulting to guest for
// anything unrecognized.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleUser:
		return RoleUser
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleGuest
	}
}

// Valid reports whether the string names a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleUser, RoleAdmin:
		return true
	}
	return false
}

// Can reports whether the role grants the capability.
func (r Role) Can(cap Capability) bool {
	return roleCapabilities[r][cap]
}
