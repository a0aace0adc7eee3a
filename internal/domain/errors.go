package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrDuplicateName      = errors.New("el nombre de categoría ya existe")
	ErrDuplicateEmail     = errors.New("el email ya está registrado")
	ErrHasChildren        = errors.New("la categoría tiene subcategorías")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("email o contraseña incorrectos. Intente de nuevo")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
