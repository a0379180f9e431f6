package services

import (
	"context"
	"fmt"

	"fleet/src/config"
	"fleet/src/repositories"
	"fleet/src/utils"

	"github.com/jackc/pgx/v5"
)

// CodeGenerator hands out sequential codes (asset codes, maintenance record
// numbers) for a category. Reservation is serialized per prefix by an
// advisory lock held until the surrounding transaction ends.
type CodeGenerator struct {
	codes repositories.CodeRepository
	cfg   *config.Config
}

func NewCodeGenerator(codes repositories.CodeRepository, cfg *config.Config) *CodeGenerator {
	return &CodeGenerator{codes: codes, cfg: cfg}
}

// CheckProvided rejects a manually entered code that collides with the
// generated sequence of category without following its format.
func (g *CodeGenerator) CheckProvided(category, code string) error {
	cc, err := g.cfg.AssetCode(category)
	if err != nil {
		return err
	}
	err = utils.ValidateCode(code, utils.CodeConfig{Prefix: cc.Prefix, PadLength: cc.PadLength, MaxNumber: cc.MaxNumber})
	if err != nil {
		v := utils.NewValidationError()
		v.Add("asset_code", err.Error())
		return v
	}
	return nil
}

// Next reserves n consecutive codes for category inside tx.
func (g *CodeGenerator) Next(ctx context.Context, category string, n int, tx pgx.Tx) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	cc, err := g.cfg.AssetCode(category)
	if err != nil {
		return nil, err
	}

	source := repositories.AssetCodes
	if category == utils.CodeCategoryMaintenance {
		source = repositories.MaintenanceRecordNumbers
	}

	if err := g.codes.Lock(ctx, cc.Prefix, tx); err != nil {
		return nil, fmt.Errorf("locking %s sequence: %w", cc.Prefix, err)
	}
	last, err := g.codes.Last(ctx, source, cc.Prefix, tx)
	if err != nil {
		return nil, fmt.Errorf("reading last %s code: %w", cc.Prefix, err)
	}

	codeCfg := utils.CodeConfig{Prefix: cc.Prefix, PadLength: cc.PadLength, MaxNumber: cc.MaxNumber}
	codes := make([]string, 0, n)
	for i := 0; i < n; i++ {
		code, err := utils.NextCode(last, codeCfg)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
		last = &code
	}
	return codes, nil
}
