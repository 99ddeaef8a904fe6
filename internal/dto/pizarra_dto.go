package dto

// RefrescoResponse is returned by POST /v1/precios/refrescar.
type RefrescoResponse struct {
	Precios             int    `json:"precios"`
	UltimaActualizacion string `json:"ultima_actualizacion"`
}
