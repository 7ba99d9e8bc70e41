package errors

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo is the result of translating a technical error.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError turns gorm/PostgreSQL errors into a stable code and a message
// fit for the user, without leaking internals.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Ha ocurrido un error en el servidor",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// Unique violation (23505)
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(errStrLower, "duplicate key") ||
		strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// Foreign key violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStrLower)
	}

	// NOT NULL violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStrLower)
	}

	// CHECK violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		if strings.Contains(errStrLower, "score") {
			return ErrorInfo{Code: RatingInvalidScore, Message: "La puntuación debe estar entre 1 y 5"}
		}
		return ErrorInfo{Code: ValidationInvalidInput, Message: "Los datos introducidos no son válidos"}
	}

	// Network errors against external services
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "No se pudo conectar con un servicio externo. Inténtalo de nuevo más tarde",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// ParseAndRespond translates the error and responds with the given HTTP status.
func ParseAndRespond(c *gin.Context, statusCode int, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, statusCode, info.Code, info.Message)
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "sku") {
		return ErrorInfo{
			Code:    CatalogSKUConflict,
			Message: "El SKU ya está en uso por otro producto",
		}
	}
	if strings.Contains(errLower, "slug") {
		return ErrorInfo{
			Code:    CatalogSlugConflict,
			Message: "El identificador (slug) ya está en uso",
		}
	}
	if strings.Contains(errLower, "ratings") || strings.Contains(errLower, "idx_ratings_product_user") {
		return ErrorInfo{
			Code:    RatingAlreadyExists,
			Message: "Ya has valorado este producto",
		}
	}
	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "El email ya está registrado",
		}
	}
	if strings.Contains(errLower, "name") || strings.Contains(errLower, "nombre") {
		return ErrorInfo{
			Code:    TaxonomyDuplicateName,
			Message: "Ya existe un registro con ese nombre",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "Ya existe un registro con esos datos",
	}
}

func parseForeignKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "No se puede eliminar: hay datos que dependen de este registro",
		}
	}
	if strings.Contains(errLower, "category_id") {
		return ErrorInfo{Code: TaxonomyNotFound, Message: "La categoría indicada no existe"}
	}
	if strings.Contains(errLower, "product_id") {
		return ErrorInfo{Code: CatalogProductNotFound, Message: "El producto indicado no existe"}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "El registro referenciado no existe",
	}
}

func parseNotNullError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "name"):
		return ErrorInfo{Code: ValidationRequired, Message: "El nombre es obligatorio"}
	case strings.Contains(errLower, "price"):
		return ErrorInfo{Code: ValidationRequired, Message: "El precio es obligatorio"}
	case strings.Contains(errLower, "sku"):
		return ErrorInfo{Code: ValidationRequired, Message: "El SKU es obligatorio"}
	case strings.Contains(errLower, "slug"):
		return ErrorInfo{Code: ValidationRequired, Message: "El slug es obligatorio"}
	}
	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "Falta un campo obligatorio",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "product") || strings.Contains(contextLower, "producto"):
		return "Producto no encontrado"
	case strings.Contains(contextLower, "category") || strings.Contains(contextLower, "categor"):
		return "Categoría no encontrada"
	case strings.Contains(contextLower, "subcategory") || strings.Contains(contextLower, "subcategor"):
		return "Subcategoría no encontrada"
	case strings.Contains(contextLower, "brand") || strings.Contains(contextLower, "marca"):
		return "Marca no encontrada"
	case strings.Contains(contextLower, "supplier") || strings.Contains(contextLower, "proveedor"):
		return "Proveedor no encontrado"
	case strings.Contains(contextLower, "status") || strings.Contains(contextLower, "estatus"):
		return "Estatus no encontrado"
	case strings.Contains(contextLower, "rating") || strings.Contains(contextLower, "valoraci"):
		return "Valoración no encontrada"
	case strings.Contains(contextLower, "user") || strings.Contains(contextLower, "usuario"):
		return "Usuario no encontrado"
	}
	return "No se encontró el registro solicitado"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create") || strings.Contains(contextLower, "crear"):
		return "Error al crear el registro. Inténtalo de nuevo más tarde"
	case strings.Contains(contextLower, "update") || strings.Contains(contextLower, "actualizar"):
		return "Error al actualizar el registro. Inténtalo de nuevo más tarde"
	case strings.Contains(contextLower, "delete") || strings.Contains(contextLower, "eliminar"):
		return "Error al eliminar el registro. Inténtalo de nuevo más tarde"
	}
	return "Ha ocurrido un error en el servidor. Inténtalo de nuevo más tarde"
}
