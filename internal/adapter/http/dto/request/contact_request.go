package request

import "storefront/internal/usecase"

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Phone   string `json:"phone,omitempty"`
}

func (r ContactRequest) ToMessage() usecase.ContactMessage {
	return usecase.ContactMessage{
		Name:    r.Name,
		Email:   r.Email,
		Subject: r.Subject,
		Message: r.Message,
		Phone:   r.Phone,
	}
}

type NewsletterRequest struct {
	Email string `json:"email"`
}

type NotifyShippedRequest struct {
	TrackingNote string `json:"trackingNote,omitempty"`
}
