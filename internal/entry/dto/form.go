package dto

import "github.com/fekuna/fridge-inventory/internal/model"

// ManualCode is the confirm-route code for entries without a barcode.
const ManualCode = "manual"

const (
	DefaultQty  = 1.0
	DefaultUnit = model.UnitCount
)

type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

type Form struct {
	Mode       Mode       `json:"mode"`
	ID         string     `json:"id,omitempty"`
	Code       string     `json:"code,omitempty"`
	Name       string     `json:"name" validate:"required"`
	Qty        float64    `json:"qty" validate:"gt=0"`
	Unit       model.Unit `json:"unit" validate:"required,unit"`
	ExpiryDate string     `json:"expiryDate" validate:"omitempty,datetime=2006-01-02"`
}

// FormInput is the editable part of the form as posted by a client.
type FormInput struct {
	Name       string     `json:"name"`
	Qty        float64    `json:"qty"`
	Unit       model.Unit `json:"unit"`
	ExpiryDate string     `json:"expiryDate"`
}

func NewBlankForm(code string) *Form {
	return &Form{
		Mode: ModeAdd,
		Code: code,
		Qty:  DefaultQty,
		Unit: DefaultUnit,
	}
}

func (f *Form) Apply(in *FormInput) {
	f.Name = in.Name
	f.Qty = in.Qty
	f.Unit = in.Unit
	f.ExpiryDate = in.ExpiryDate
}

func (f *Form) IsManual() bool {
	return f.Code == "" || f.Code == ManualCode
}
