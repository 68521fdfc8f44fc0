package models

import "time"

// Default branding used when no visual configuration is active.
const (
	DefaultInstitutionName = "EduQuest"
	DefaultPrimaryColor    = "#3B82F6"
	DefaultSecondaryColor  = "#6366F1"
	DefaultAccentColor     = "#8B5CF6"
	DefaultBackgroundColor = "#F9FAFB"
)

// VisualConfig is a row of configuracion_visual. At most one row is active.
type VisualConfig struct {
	ID              *string    `db:"id" json:"id"`
	LogoURL         *string    `db:"logo_url" json:"logo_url"`
	InstitutionName string     `db:"nombre_institucion" json:"nombre_institucion"`
	PrimaryColor    string     `db:"color_primario" json:"color_primario"`
	SecondaryColor  string     `db:"color_secundario" json:"color_secundario"`
	AccentColor     string     `db:"color_acento" json:"color_acento"`
	BackgroundColor string     `db:"color_fondo" json:"color_fondo"`
	Active          bool       `db:"activo" json:"activo"`
	CreatedAt       *time.Time `db:"fecha_creacion" json:"fecha_creacion"`
	UpdatedAt       *time.Time `db:"fecha_actualizacion" json:"fecha_actualizacion"`
}

// DefaultVisualConfig is served by the public endpoint when nothing is active.
func DefaultVisualConfig() VisualConfig {
	empty := ""
	return VisualConfig{
		LogoURL:         &empty,
		InstitutionName: DefaultInstitutionName,
		PrimaryColor:    DefaultPrimaryColor,
		SecondaryColor:  DefaultSecondaryColor,
		AccentColor:     DefaultAccentColor,
		BackgroundColor: DefaultBackgroundColor,
		Active:          true,
	}
}

// VisualConfigRequest is the create/update payload. Empty colors take defaults on create.
type VisualConfigRequest struct {
	LogoURL         *string `json:"logo_url" validate:"omitempty,max=500"`
	InstitutionName *string `json:"nombre_institucion" validate:"omitempty,max=200"`
	PrimaryColor    *string `json:"color_primario" validate:"omitempty,hexcolor,len=7"`
	SecondaryColor  *string `json:"color_secundario" validate:"omitempty,hexcolor,len=7"`
	AccentColor     *string `json:"color_acento" validate:"omitempty,hexcolor,len=7"`
	BackgroundColor *string `json:"color_fondo" validate:"omitempty,hexcolor,len=7"`
	Active          *bool   `json:"activo"`
}
