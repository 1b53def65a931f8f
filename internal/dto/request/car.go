package request

type UpdateCarStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=AVAILABLE UNAVAILABLE"`
}
