package model

type UserSearchResult struct {
	ID        string  `db:"id" json:"id"`
	FullName  *string `db:"full_name" json:"full_name"`
	Username  *string `db:"username" json:"username"`
	AvatarURL *string `db:"avatar_url" json:"avatar_url"`
	Bio       *string `db:"bio" json:"bio"`
	Location  *string `db:"location" json:"location"`
}

type BusinessSearchResult struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	LogoURL     *string `db:"logo_url" json:"logo_url"`
	Category    string  `db:"category" json:"category"`
	Location    *string `db:"location" json:"location"`
}

type CommunitySearchResult struct {
	ID            string  `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	Description   *string `db:"description" json:"description"`
	CoverImageURL *string `db:"cover_image_url" json:"cover_image_url"`
}

type SearchResults struct {
	Users       []UserSearchResult      `json:"users"`
	Businesses  []BusinessSearchResult  `json:"businesses"`
	Communities []CommunitySearchResult `json:"communities"`
}

// Total is the number of hits across all three result kinds.
func (r SearchResults) Total() int {
	return len(r.Users) + len(r.Businesses) + len(r.Communities)
}
