package collateral

import (
	"errors"
	"time"

	"lamf-backend/pkg/amortize"
)

type LienStatus string

const (
	LienNone     LienStatus = "none"
	LienMarked   LienStatus = "marked"
	LienReleased LienStatus = "released"
)

// HolderKind says what kind of record currently holds the lien.
type HolderKind string

const (
	HolderApplication HolderKind = "application"
	HolderLoan        HolderKind = "loan"
)

var (
	ErrNotFound       = errors.New("collateral not found")
	ErrDuplicateFolio = errors.New("folio number already registered")
	ErrLienMarked     = errors.New("collateral lien already marked")
	ErrLienNotMarked  = errors.New("collateral lien not marked")
	ErrActiveLoan     = errors.New("collateral secures an active loan")
)

// Collateral is a mutual-fund folio pledged against a loan. The holder
// relation (HolderKind + HolderRef) is the single source of truth for who
// holds the lien; it is only ever mutated through the methods below so the
// exclusive-pledge invariant (at most one holder, marked iff held) is
// enforced in one place.
type Collateral struct {
	ID             uint64     `gorm:"primaryKey;column:id" json:"-"`
	FolioNumber    string     `gorm:"size:64;uniqueIndex:ux_collaterals_folio" json:"folio_number"`
	FundName       string     `gorm:"size:128" json:"fund_name"`
	Units          float64    `gorm:"type:decimal(18,4)" json:"units"`
	NAVPerUnit     float64    `gorm:"column:nav_per_unit;type:decimal(18,4)" json:"nav_per_unit"`
	CurrentValue   float64    `gorm:"type:decimal(18,2)" json:"current_value"`
	NAVUpdatedAt   time.Time  `gorm:"column:nav_updated_at" json:"nav_updated_at"`
	LienStatus     LienStatus `gorm:"size:16;default:'none';index:idx_collaterals_lien" json:"lien_status"`
	LienMarkedAt   *time.Time `json:"lien_marked_at,omitempty"`
	LienReleasedAt *time.Time `json:"lien_released_at,omitempty"`
	HolderKind     HolderKind `gorm:"size:16;index:idx_collaterals_holder" json:"holder_kind,omitempty"`
	HolderRef      string     `gorm:"size:64;index:idx_collaterals_holder" json:"holder_ref,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Collateral) TableName() string { return "collaterals" }

// Revalue recomputes CurrentValue from units and NAV. Called explicitly
// before every save that touched either factor.
func (c *Collateral) Revalue() {
	c.CurrentValue = amortize.Round2(c.Units * c.NAVPerUnit)
}

// SetNAV applies a new per-unit NAV and revalues.
func (c *Collateral) SetNAV(nav float64, at time.Time) {
	c.NAVPerUnit = nav
	c.NAVUpdatedAt = at
	c.Revalue()
}

// Pledge marks the lien for the given holder. Fails if a lien is already
// marked, regardless of holder.
func (c *Collateral) Pledge(kind HolderKind, ref string, at time.Time) error {
	if c.LienStatus == LienMarked {
		return ErrLienMarked
	}
	c.LienStatus = LienMarked
	c.LienMarkedAt = &at
	c.HolderKind = kind
	c.HolderRef = ref
	return nil
}

// MigrateHolder moves a marked lien to a new holder without releasing it.
// Used at disbursal when the application's pledge becomes the loan's.
func (c *Collateral) MigrateHolder(kind HolderKind, ref string) error {
	if c.LienStatus != LienMarked {
		return ErrLienNotMarked
	}
	c.HolderKind = kind
	c.HolderRef = ref
	return nil
}

// Release clears a marked lien and its holder. The caller is responsible
// for the active-loan check; this method only enforces the lien state.
func (c *Collateral) Release(at time.Time) error {
	if c.LienStatus != LienMarked {
		return ErrLienNotMarked
	}
	c.LienStatus = LienReleased
	c.LienReleasedAt = &at
	c.HolderKind = ""
	c.HolderRef = ""
	return nil
}
