package dto

type Point struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type Outlet struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name,omitempty"`
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	Tier    *string  `json:"tier"`
}

type ListOutletsResponse struct {
	Outlets []Outlet `json:"outlets"`
}
