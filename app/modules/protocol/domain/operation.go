package protocoldomain

// Operation is a production-system function name.
type Operation string

const (
	OpSetText           Operation = "SetText"
	OpSetColor          Operation = "SetColor"
	OpSetImage          Operation = "SetImage"
	OpSetTextVisibleOn  Operation = "SetTextVisibleOn"
	OpSetTextVisibleOff Operation = "SetTextVisibleOff"
	OpOverlayPlay       Operation = "OverlayInput4"
	OpOverlayStop       Operation = "OverlayInput4Off"
	OpSetPanX           Operation = "SetPanX"
)

// takesValue reports whether the operation carries a Value parameter.
func (o Operation) takesValue() bool {
	switch o {
	case OpSetText, OpSetColor, OpSetImage, OpSetPanX:
		return true
	default:
		return false
	}
}

// Extension is the property suffix appended to a field name.
type Extension string

const (
	ExtText   Extension = "Text"
	ExtColor  Extension = "Fill.Color"
	ExtSource Extension = "Source"
)
