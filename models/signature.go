package models

// SignaturePurpose tells the identity provider what it is being asked to
// sign, so the approval prompt can say so.
type SignaturePurpose string

const (
	PurposeSession     SignaturePurpose = "session"
	PurposeTransaction SignaturePurpose = "transaction"
)

// SignatureRequest is handed to the identity provider. Summary is a human
// readable rendering of Payload.
type SignatureRequest struct {
	Purpose SignaturePurpose
	Payload []byte
	Summary string
}
