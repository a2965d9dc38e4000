package segmenting

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de segmentação
var (
	// Erros de validação
	ErrInvalidQuery       = errors.New("invalid list query")
	ErrCustomerIDRequired = errors.New("customer ID is required")

	// Erros da fonte de dados
	ErrFetchCustomers = errors.New("error fetching customers from data source")
)

// SegmentError é um erro com contexto adicional para segmentação
type SegmentError struct {
	Err        error    // Erro base
	Code       string   // Código de erro para API
	CustomerID string   // ID do cliente envolvido (quando aplicável)
	Details    []string // Violações ou detalhes adicionais
}

// Error implementa a interface error
func (e *SegmentError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *SegmentError) Unwrap() error {
	return e.Err
}

func NewSegmentError(err error, code string, details ...string) *SegmentError {
	return &SegmentError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewSegmentErrorWithID(err error, code string, customerID string) *SegmentError {
	return &SegmentError{
		Err:        err,
		Code:       code,
		CustomerID: customerID,
	}
}
