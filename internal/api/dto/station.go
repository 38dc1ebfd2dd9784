package dto

type ListStationsResponse struct {
	Stations []StationResponse `json:"stations"`
}
