package health

// DocumentCounter reports how many documents are indexed.
type DocumentCounter interface {
	Count() int
}

// Status is the health payload.
type Status struct {
	OK        bool `json:"ok"`
	Documents int  `json:"documents"`
}

// Service encapsulates health-related checks.
type Service struct {
	docs DocumentCounter
}

// NewService constructs a new health service.
func NewService(docs DocumentCounter) *Service {
	return &Service{docs: docs}
}

// Status returns a simple health payload.
func (s *Service) Status() Status {
	status := Status{OK: true}
	if s != nil && s.docs != nil {
		status.Documents = s.docs.Count()
	}
	return status
}
