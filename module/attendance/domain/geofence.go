package domain

// GeofenceTarget is a company's registered location and tolerance.
type GeofenceTarget struct {
	Center       Coordinate `json:"center"`
	RadiusMeters float64    `json:"radius_meters"`
}

func (t GeofenceTarget) Validate() error {
	if err := t.Center.Validate(); err != nil {
		return err
	}
	if !(t.RadiusMeters > 0) {
		return NewValidationError("radius_meters", "must be greater than 0")
	}
	return nil
}

type ProximityResult struct {
	IsValid  bool    `json:"is_valid"`
	Distance float64 `json:"distance"`
	Message  string  `json:"message"`
}

// Assignment is a student's active company placement.
type Assignment struct {
	StudentID   string         `json:"student_id"`
	CompanyID   string         `json:"company_id"`
	CompanyName string         `json:"company_name"`
	Target      GeofenceTarget `json:"target"`
}
