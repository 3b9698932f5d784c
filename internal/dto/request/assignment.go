package request

type AssignGuideRequest struct {
	GuideID     string `json:"guide_id" validate:"required,uuid4"`
	IsPrimary   bool   `json:"is_primary"`
	AutoConfirm bool   `json:"auto_confirm"`
}

type AssignExternalGuideRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Contact     string `json:"contact" validate:"required,min=3"`
	AutoConfirm bool   `json:"auto_confirm"`
}

type SetPrimaryGuideRequest struct {
	GuideID string `json:"guide_id" validate:"required,uuid4"`
}
