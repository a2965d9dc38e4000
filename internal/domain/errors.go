package domain

import "errors"

var (
	ErrCustomerNotFound = errors.New("cliente não encontrado")
	ErrInvalidCohort    = errors.New("coorte inválida")
	ErrInvalidIndustry  = errors.New("vertical inválida")
	// ErrUnsupported é retornado pela fonte de dados que não implementa a operação
	ErrUnsupported = errors.New("operação não suportada pela fonte de dados")
)
