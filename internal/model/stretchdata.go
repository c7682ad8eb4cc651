package model

// StretchData is the body-measurement record used by the tailoring
// workflow. Every sub-section is optional; numeric fields use pointers
// so that an absent measurement is distinguishable on the wire from a
// zero one (the projection still treats both as absent, see the
// projection package).
type StretchData struct {
	OrderID        string          `json:"orderId,omitempty"`
	Kameez         *Kameez         `json:"kameez,omitempty"`
	Shalwar        *Shalwar        `json:"shalwar,omitempty"`
	FitPreferences *FitPreferences `json:"fitPreferences,omitempty"`
	Height         *float64        `json:"height,omitempty"`
	Weight         *float64        `json:"weight,omitempty"`
	StitchImage    string          `json:"stitchImage,omitempty"`
}

// Kameez holds the top-garment measurements, in inches.
type Kameez struct {
	ArmholeCircumference       *float64 `json:"armholeCircumference,omitempty"`
	BicepCircumference         *float64 `json:"bicepCircumference,omitempty"`
	BustCircumference          *float64 `json:"bustCircumference,omitempty"`
	FrontNeckDepth             *float64 `json:"frontNeckDepth,omitempty"`
	HipCircumference           *float64 `json:"hipCircumference,omitempty"`
	KameezLength               *float64 `json:"kameezLength,omitempty"`
	NeckCircumference          *float64 `json:"neckCircumference,omitempty"`
	ShoulderToWaistLength      *float64 `json:"shoulderToWaistLength,omitempty"`
	ShoulderWidth              *float64 `json:"shoulderWidth,omitempty"`
	SleeveLength               *float64 `json:"sleeveLength,omitempty"`
	SleeveOpeningCircumference *float64 `json:"sleeveOpeningCircumference,omitempty"`
	WaistCircumference         *float64 `json:"waistCircumference,omitempty"`
}

// Shalwar holds the bottom-garment measurements, in inches.
type Shalwar struct {
	AnkleOpening       *float64 `json:"ankleOpening,omitempty"`
	CrotchDepth        *float64 `json:"crotchDepth,omitempty"`
	HipCircumference   *float64 `json:"hipCircumference,omitempty"`
	InseamLength       *float64 `json:"inseamLength,omitempty"`
	OutseamLength      *float64 `json:"outseamLength,omitempty"`
	Rise               *float64 `json:"rise,omitempty"`
	ThighCircumference *float64 `json:"thighCircumference,omitempty"`
	WaistCircumference *float64 `json:"waistCircumference,omitempty"`
}

// FitPreferences holds the categorical styling choices, distinct from
// the numeric measurements.
type FitPreferences struct {
	KameezFit     string `json:"kameezFit,omitempty"`
	NecklineStyle string `json:"necklineStyle,omitempty"`
	PantStyle     string `json:"pantStyle,omitempty"`
	SleeveStyle   string `json:"sleeveStyle,omitempty"`
}

// Clone returns a deep copy. The edit session seeds its draft from a
// clone so the editor can never mutate live controller state.
func (s *StretchData) Clone() *StretchData {
	if s == nil {
		return nil
	}
	out := *s
	out.Kameez = s.Kameez.clone()
	out.Shalwar = s.Shalwar.clone()
	if s.FitPreferences != nil {
		fp := *s.FitPreferences
		out.FitPreferences = &fp
	}
	out.Height = cloneFloat(s.Height)
	out.Weight = cloneFloat(s.Weight)
	return &out
}

func (k *Kameez) clone() *Kameez {
	if k == nil {
		return nil
	}
	return &Kameez{
		ArmholeCircumference:       cloneFloat(k.ArmholeCircumference),
		BicepCircumference:         cloneFloat(k.BicepCircumference),
		BustCircumference:          cloneFloat(k.BustCircumference),
		FrontNeckDepth:             cloneFloat(k.FrontNeckDepth),
		HipCircumference:           cloneFloat(k.HipCircumference),
		KameezLength:               cloneFloat(k.KameezLength),
		NeckCircumference:          cloneFloat(k.NeckCircumference),
		ShoulderToWaistLength:      cloneFloat(k.ShoulderToWaistLength),
		ShoulderWidth:              cloneFloat(k.ShoulderWidth),
		SleeveLength:               cloneFloat(k.SleeveLength),
		SleeveOpeningCircumference: cloneFloat(k.SleeveOpeningCircumference),
		WaistCircumference:         cloneFloat(k.WaistCircumference),
	}
}

func (s *Shalwar) clone() *Shalwar {
	if s == nil {
		return nil
	}
	return &Shalwar{
		AnkleOpening:       cloneFloat(s.AnkleOpening),
		CrotchDepth:        cloneFloat(s.CrotchDepth),
		HipCircumference:   cloneFloat(s.HipCircumference),
		InseamLength:       cloneFloat(s.InseamLength),
		OutseamLength:      cloneFloat(s.OutseamLength),
		Rise:               cloneFloat(s.Rise),
		ThighCircumference: cloneFloat(s.ThighCircumference),
		WaistCircumference: cloneFloat(s.WaistCircumference),
	}
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
