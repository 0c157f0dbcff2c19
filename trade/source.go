package trade

// CurrencySource is the external inventory the account deposits from and
// withdraws to. The engine never owns this supply; it only queries,
// consumes, and produces through the contract.
type CurrencySource interface {
	// QueryAvailable reports the spendable external units.
	QueryAvailable() float64

	// Consume removes amount from the external source. It returns false
	// when the physical supply is insufficient, in which case the deposit
	// must not commit.
	Consume(amount float64) bool

	// Produce materializes external units, used by withdrawals. Assumed to
	// always succeed.
	Produce(amount float64)
}

// MemorySource is an in-memory CurrencySource for tests and demos.
type MemorySource struct {
	Available float64
}

func NewMemorySource(available float64) *MemorySource {
	return &MemorySource{Available: available}
}

func (s *MemorySource) QueryAvailable() float64 { return s.Available }

func (s *MemorySource) Consume(amount float64) bool {
	if amount > s.Available {
		return false
	}
	s.Available -= amount
	return true
}

func (s *MemorySource) Produce(amount float64) {
	s.Available += amount
}
