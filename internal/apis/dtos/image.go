package dtos

type ImageProcessResponse struct {
	Formula        string  `json:"formula"`
	ProcessingTime float64 `json:"processing_time"`
	UserUID        string  `json:"user_uid"`
}
