package model

type PendingApprovals struct {
	Communities int `db:"communities" json:"communities"`
	Businesses  int `db:"businesses" json:"businesses"`
	Jobs        int `db:"jobs" json:"jobs"`
}

type CategoryCount struct {
	Category string `db:"category" json:"category"`
	Count    int    `db:"count" json:"count"`
}

// WeekdayCount counts posts created on a day of the week (0 = Sunday).
type WeekdayCount struct {
	Weekday int `db:"weekday" json:"weekday"`
	Posts   int `db:"posts" json:"posts"`
}

type AdminStats struct {
	PendingApprovals PendingApprovals `json:"pending_approvals"`
	TopCategories    []CategoryCount  `json:"top_categories"`
	WeeklyPosts      []WeekdayCount   `json:"weekly_posts"`
}
