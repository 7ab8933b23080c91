package httpserver

import (
	"net/http"

	"tireshop/internal/domain"

	"github.com/gin-gonic/gin"
)

type orderRequest struct {
	SessionID   string         `json:"session_id"`
	ContactInfo contactPayload `json:"contact_info" binding:"required"`
	Address     addressPayload `json:"address" binding:"required"`
}

type contactPayload struct {
	Type        string         `json:"type"`
	Individual  *contactFields `json:"individual"`
	LegalEntity *contactFields `json:"legal_entity"`
}

type contactFields struct {
	Surname            string `json:"surname"`
	Name               string `json:"name"`
	Patronymic         string `json:"patronymic"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	RegistrationNumber string `json:"registration_number"`
	LegalAddress       string `json:"legal_address"`
	OrganizationName   string `json:"organization_name"`
}

type addressPayload struct {
	City              string `json:"city"`
	Street            string `json:"street"`
	HouseNumber       string `json:"house_number"`
	ApartmentOrOffice string `json:"apartment_or_office"`
	Entrance          string `json:"entrance"`
	Floor             string `json:"floor"`
	Intercom          string `json:"intercom"`
	DeliveryComments  string `json:"delivery_comments"`
}

// toContact flattens the tagged payload into the domain union. The
// variant block matching the declared type is used; a missing block
// yields zero fields, which the service rejects as invalid input.
func (p contactPayload) toContact() domain.Contact {
	contact := domain.Contact{Type: p.Type}
	var fields *contactFields
	switch p.Type {
	case domain.ContactTypeIndividual:
		fields = p.Individual
	case domain.ContactTypeLegalEntity:
		fields = p.LegalEntity
	}
	if fields == nil {
		return contact
	}
	contact.Surname = fields.Surname
	contact.Name = fields.Name
	contact.Patronymic = fields.Patronymic
	contact.Email = fields.Email
	contact.Phone = fields.Phone
	contact.RegistrationNumber = fields.RegistrationNumber
	contact.LegalAddress = fields.LegalAddress
	contact.OrganizationName = fields.OrganizationName
	return contact
}

func (p addressPayload) toAddress() domain.Address {
	return domain.Address{
		City:              p.City,
		Street:            p.Street,
		HouseNumber:       p.HouseNumber,
		ApartmentOrOffice: p.ApartmentOrOffice,
		Entrance:          p.Entrance,
		Floor:             p.Floor,
		Intercom:          p.Intercom,
		DeliveryComments:  p.DeliveryComments,
	}
}

func orderHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		token := req.SessionID
		if token == "" {
			token = sessionToken(c)
		}
		orderID, err := deps.OrderSvc.Place(c.Request.Context(), token, req.ContactInfo.toContact(), req.Address.toAddress())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": "order created", "order_id": orderID})
	}
}
