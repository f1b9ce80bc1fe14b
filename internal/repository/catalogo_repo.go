package repository

import (
	"context"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogoRepository reads the per-dough-type and equipment catalogs that the
// conditional sub-flows branch on.
type CatalogoRepository interface {
	FindTipoMasa(ctx context.Context, tipoMasa string) (*model.TipoMasaCatalogo, error)
	ListTiposMasa(ctx context.Context) ([]model.TipoMasaCatalogo, error)

	ListHornos(ctx context.Context) ([]model.TipoHorno, error)
	FindHorno(ctx context.Context, id uuid.UUID) (*model.TipoHorno, error)

	ListProgramas(ctx context.Context, tipoMasa string) ([]model.ProgramaHorneo, error)
	FindPrograma(ctx context.Context, id uuid.UUID) (*model.ProgramaHorneo, error)

	ListMaquinasFormado(ctx context.Context) ([]model.MaquinaFormado, error)
	ListEspecificacionesFormado(ctx context.Context, tipoMasa string, codigos []string) ([]model.EspecificacionFormado, error)
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) FindTipoMasa(ctx context.Context, tipoMasa string) (*model.TipoMasaCatalogo, error) {
	var t model.TipoMasaCatalogo
	err := r.db.WithContext(ctx).
		Where("tipo_masa = ? AND activo = true", tipoMasa).
		First(&t).Error
	return &t, err
}

func (r *catalogoRepo) ListTiposMasa(ctx context.Context) ([]model.TipoMasaCatalogo, error) {
	var tipos []model.TipoMasaCatalogo
	err := r.db.WithContext(ctx).Where("activo = true").Order("tipo_masa ASC").Find(&tipos).Error
	return tipos, err
}

func (r *catalogoRepo) ListHornos(ctx context.Context) ([]model.TipoHorno, error) {
	var hornos []model.TipoHorno
	err := r.db.WithContext(ctx).Where("activo = true").Order("codigo ASC").Find(&hornos).Error
	return hornos, err
}

func (r *catalogoRepo) FindHorno(ctx context.Context, id uuid.UUID) (*model.TipoHorno, error) {
	var h model.TipoHorno
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	return &h, err
}

// ListProgramas returns active programs suggested for tipoMasa plus the
// generic ones (tipo_masa_sugerido IS NULL).
func (r *catalogoRepo) ListProgramas(ctx context.Context, tipoMasa string) ([]model.ProgramaHorneo, error) {
	var programas []model.ProgramaHorneo
	q := r.db.WithContext(ctx).Where("activo = true")
	if tipoMasa != "" {
		q = q.Where("tipo_masa_sugerido = ? OR tipo_masa_sugerido IS NULL", tipoMasa)
	}
	err := q.Order("numero_programa ASC").Find(&programas).Error
	return programas, err
}

func (r *catalogoRepo) FindPrograma(ctx context.Context, id uuid.UUID) (*model.ProgramaHorneo, error) {
	var p model.ProgramaHorneo
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *catalogoRepo) ListMaquinasFormado(ctx context.Context) ([]model.MaquinaFormado, error) {
	var maquinas []model.MaquinaFormado
	err := r.db.WithContext(ctx).Where("activa = true").Order("codigo ASC").Find(&maquinas).Error
	return maquinas, err
}

func (r *catalogoRepo) ListEspecificacionesFormado(ctx context.Context, tipoMasa string, codigos []string) ([]model.EspecificacionFormado, error) {
	var specs []model.EspecificacionFormado
	q := r.db.WithContext(ctx)
	if len(codigos) > 0 {
		q = q.Where("producto_codigo IN ? OR tipo_masa = ?", codigos, tipoMasa)
	} else {
		q = q.Where("tipo_masa = ?", tipoMasa)
	}
	err := q.Find(&specs).Error
	return specs, err
}
