package domain

// Agent is read-only reference data describing a listing agent.
type Agent struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Rating         float64 `json:"rating"`
	PropertiesSold int     `json:"properties_sold"`
	ImageURL       string  `json:"image_url"`
}
