package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundHalfUp arredonda para a quantidade de casas informada, com empate para longe do zero
func RoundHalfUp(f float64, places int32) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return decimal.NewFromFloat(f).Round(places).InexactFloat64()
}

// Percent calcula part/total*100 com proteção contra divisão por zero
func Percent(part, total float64) float64 {
	if total <= 0 {
		return 0
	}

	return part / total * 100
}
