package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrBillNotFound        = errors.New("factura no encontrada")
	ErrDuplicateBarcode    = errors.New("el código de barras ya está registrado")
	ErrDuplicateBillNumber = errors.New("el número de factura ya existe")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidAdjustment   = errors.New("el ajuste dejaría el stock en negativo")
	ErrValidation          = errors.New("entrada inválida")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
)

// ProductNotFoundError señala un código de barras sin producto en el catálogo.
// Envuelve ErrProductNotFound para que errors.Is siga funcionando.
type ProductNotFoundError struct {
	Barcode string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("producto no encontrado con código de barras: %s", e.Barcode)
}

func (e *ProductNotFoundError) Unwrap() error { return ErrProductNotFound }

// InsufficientStockError lleva el detalle necesario para un mensaje preciso:
// producto, stock disponible y cantidad solicitada.
type InsufficientStockError struct {
	ProductName string
	Barcode     string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (%s): disponible %d, solicitado %d",
		e.ProductName, e.Barcode, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// DuplicateBarcodeError señala un alta o renombre que violaría la unicidad del código de barras.
type DuplicateBarcodeError struct {
	Barcode string
}

func (e *DuplicateBarcodeError) Error() string {
	return fmt.Sprintf("ya existe un producto con código de barras: %s", e.Barcode)
}

func (e *DuplicateBarcodeError) Unwrap() error { return ErrDuplicateBarcode }
