package promotion

import (
	bookingModels "github.com/m04kA/SMC-HotelService/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelService/internal/service/promotions"
)

// ApplyPromotionRequest HTTP request model
type ApplyPromotionRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

// PromotionResponse HTTP response model
type PromotionResponse struct {
	Promotion *bookingModels.PromotionResponse `json:"promotion,omitempty"`
	Booking   *bookingModels.BookingResponse   `json:"booking"`
}

// FromServiceResult конвертирует результат сервиса в HTTP response
func FromServiceResult(res *promotions.Result, applied bool) *PromotionResponse {
	resp := &PromotionResponse{Booking: bookingModels.FromDomainBooking(res.Booking)}
	if applied && res.Application != nil {
		resp.Promotion = bookingModels.FromDomainApplication(res.Application)
	}
	return resp
}
