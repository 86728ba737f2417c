package models

// FavoriteKind distinguishes plain saves from starred entries.
type FavoriteKind string

const (
	KindSaved    FavoriteKind = "saved"
	KindFavorite FavoriteKind = "favorite"
)

// RecommendationSource records which recommender produced a saved record.
type RecommendationSource string

const (
	SourceConditions RecommendationSource = "conditions"
	SourceSoil       RecommendationSource = "soil"
)

// Favorite is a ledger entry: a recommendation a user saved, starred or edited.
// ID is minted at save time; the engine never assigns one.
type Favorite struct {
	ID         string               `db:"id" json:"id"`
	UserID     int                  `db:"user_id" json:"userId"`
	Crop       string               `db:"crop" json:"crop"`
	Variety    string               `db:"variety" json:"variety"`
	Kind       FavoriteKind         `db:"kind" json:"kind"`
	Source     RecommendationSource `db:"source" json:"source"`
	Notes      string               `db:"notes" json:"notes"`
	RecordJSON string               `db:"record_json" json:"-"`
	Edited     bool                 `db:"edited" json:"edited"`
	CreatedAt  string               `db:"created_at" json:"createdAt"`
	UpdatedAt  string               `db:"updated_at" json:"updatedAt"`

	Record *RecommendationRecord `db:"-" json:"record,omitempty"`
}
