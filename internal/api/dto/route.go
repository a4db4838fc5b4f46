package dto

type OptimizeRequest struct {
	Outlets    []Outlet `json:"outlets"`
	Start      *Point   `json:"start"`
	Prioritize bool     `json:"prioritize"`
}

type OptimizeResponse struct {
	Customers     []Outlet `json:"customers"`
	TotalDistance float64  `json:"total_distance"`
}
