package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrDuplicateUser     = errors.New("el nombre de usuario ya está registrado")
	ErrAdminExists       = errors.New("ya existe un usuario Admin")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidCredential = errors.New("credenciales inválidas")
	ErrUnauthenticated   = errors.New("no autenticado")
	ErrInvalidToken      = errors.New("token inválido o expirado")
	ErrMissingRole       = errors.New("el token no incluye rol")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPriceMismatch     = errors.New("el total enviado no coincide con cantidad × precio")
)
