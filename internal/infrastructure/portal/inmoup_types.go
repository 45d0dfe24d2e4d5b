package portal

import "strings"

// InmoupListing is the outgoing payload for the InmoUp portal. Create
// wraps a single listing in a one-element array envelope; update sends
// it bare, addressed by the remote id.
type InmoupListing struct {
	ID            string             `json:"id,omitempty"` // remote id, set on update
	Titulo        string             `json:"titulo"`
	Descripcion   string             `json:"descripcion"`
	TipoID        int                `json:"tipoInmueble"`
	OperacionID   int                `json:"tipoOperacion"`
	Precio        float64            `json:"precio"`
	MonedaID      int                `json:"moneda"`
	Expensas      float64            `json:"expensas"`
	SupTotal      float64            `json:"superficieTotal"`
	SupCubierta   float64            `json:"superficieCubierta"`
	Dormitorios   int                `json:"dormitorios"`
	Banos         int                `json:"banos"`
	Toilettes     int                `json:"toilettes"`
	Cocheras      int                `json:"cocheras"`
	Ambientes     int                `json:"ambientes"`
	Plantas       int                `json:"plantas"`
	Antiguedad    int                `json:"antiguedad"`
	Orientacion   string             `json:"orientacion"`
	Servicios     []int              `json:"servicios"`
	AmbientesExtra []int             `json:"ambientesExtra"`
	ZonasCercanas []int              `json:"zonasCercanas"`
	Ubicacion     *InmoupLocation    `json:"ubicacion"`
	Imagenes      []InmoupImage      `json:"imagenes"`
	Estado        int                `json:"estado,omitempty"`
}

// InmoupLocation is the nested location block. Address is omitted
// when the owner asked to hide it.
type InmoupLocation struct {
	Provincia    string  `json:"provincia"`
	Departamento string  `json:"departamento"`
	Localidad    string  `json:"localidad"`
	Barrio       string  `json:"barrio"`
	Direccion    string  `json:"direccion"`
	Latitud      float64 `json:"latitud"`
	Longitud     float64 `json:"longitud"`
}

// InmoupImage is a single media entry with an absolute URL
type InmoupImage struct {
	URL    string `json:"url"`
	Titulo string `json:"titulo"`
	Orden  int    `json:"orden"`
}

// inmoupItemResult is one element of the portal's create response
// envelope.
type inmoupItemResult struct {
	ID     any    `json:"id"`
	URL    string `json:"url"`
	Estado string `json:"estado"`
}

// inmoupResponse is the decoded portal response. The portal reports
// application errors inside 2xx bodies under more than one key, so
// both are checked.
type inmoupResponse struct {
	Propiedades []inmoupItemResult `json:"propiedades"`
	Errors      []string           `json:"errors"`
	Errores     []string           `json:"errores"`
	Message     string             `json:"message"`
}

// ErrorMessages collects every embedded error string
func (r *inmoupResponse) ErrorMessages() []string {
	msgs := append([]string{}, r.Errors...)
	msgs = append(msgs, r.Errores...)
	return msgs
}

// IsSuccess reports whether the body carries no embedded errors
func (r *inmoupResponse) IsSuccess() bool {
	return len(r.Errors) == 0 && len(r.Errores) == 0
}

// ErrorMessage builds a best-effort human message from the body
func (r *inmoupResponse) ErrorMessage() string {
	if msgs := r.ErrorMessages(); len(msgs) > 0 {
		return strings.Join(msgs, "; ")
	}
	return r.Message
}
