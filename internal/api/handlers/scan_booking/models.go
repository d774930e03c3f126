package scan_booking

// ScanPayloadRequest содержимое QR-кода, считанное на входе
type ScanPayloadRequest struct {
	Payload string `json:"payload"`
}
