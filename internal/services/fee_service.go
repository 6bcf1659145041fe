package services

import (
	"log/slog"

	"github.com/jrc-public-school/school-service/internal/models"
	"github.com/jrc-public-school/school-service/internal/validator"
)

type feeService struct {
	logger    *slog.Logger
	validator *validator.Validator
}

func NewFeeService(logger *slog.Logger, v *validator.Validator) FeeService {
	return &feeService{
		logger:    logger,
		validator: v,
	}
}

// Structure returns the published fee schedule and transport charges
func (s *feeService) Structure() *FeeStructureResponse {
	order := []models.ClassBand{
		models.BandNursery,
		models.BandPrimary,
		models.BandMiddle,
		models.BandHigh,
		models.BandSenior,
	}

	schedule := make([]FeeStructureEntry, 0, len(order))
	for _, band := range order {
		entry := models.FeeSchedule[band]
		schedule = append(schedule, FeeStructureEntry{
			Group:   string(band),
			Classes: entry.Name,
			Annual:  entry.Base,
		})
	}

	transport := make(map[string]float64, len(models.TransportFees))
	for zone, fee := range models.TransportFees {
		transport[string(zone)] = fee
	}

	return &FeeStructureResponse{
		Schedule:  schedule,
		Transport: transport,
		AdditionalCharges: []string{
			"Admission fee (one time): as per school office",
			"Examination fee included in annual fee",
			"Books and uniform charged separately",
		},
	}
}

// Calculate estimates the annual fee for a class and transport choice.
// An unknown transport zone is treated as no transport.
func (s *feeService) Calculate(req *FeeCalculateRequest) (*FeeCalculation, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError(errs[0].Field, errs[0].Message, errs[0].Value)
	}

	band, ok := models.BandForClass(req.Class)
	if !ok {
		return nil, NewValidationError("class", "is not a recognised class", req.Class)
	}

	entry := models.FeeSchedule[band]

	transportFee, ok := models.TransportFees[models.TransportZone(req.Transport)]
	if !ok {
		transportFee = models.TransportFees[models.TransportNone]
	}

	return &FeeCalculation{
		Class:        req.Class,
		ClassGroup:   entry.Name,
		BaseFee:      entry.Base,
		TransportFee: transportFee,
		Total:        entry.Base + transportFee,
		Breakdown: FeeBreakdown{
			Tuition:      entry.Base * models.TuitionShare,
			OtherCharges: entry.Base * models.OtherChargesShare,
		},
	}, nil
}
