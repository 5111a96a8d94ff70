package models

import "time"

// Lifecycle stages, in order. The stored status column accepts any of the
// four values; arbitrary jumps and backward moves are an explicit escape
// hatch, the default path always advances to the immediate next stage.
const (
	StageAcquired     = "acquired"
	StageInService    = "in_service"
	StageReadyForSale = "ready_for_sale"
	StageSold         = "sold"
)

var StageOrder = []string{StageAcquired, StageInService, StageReadyForSale, StageSold}

func IsValidStage(stage string) bool {
	return StageIndex(stage) >= 0
}

func StageIndex(stage string) int {
	for i, s := range StageOrder {
		if s == stage {
			return i
		}
	}
	return -1
}

// NextStage returns the stage following the given one, or false when the
// vehicle is already at the last stage.
func NextStage(stage string) (string, bool) {
	i := StageIndex(stage)
	if i < 0 || i == len(StageOrder)-1 {
		return "", false
	}
	return StageOrder[i+1], true
}

// Advisory only; never gates a transition.
var StageSuggestedActions = map[string][]string{
	StageAcquired: {
		"Take arrival photos before detailing",
		"Share a new-arrival teaser post",
		"Record the walkaround while the lot is quiet",
	},
	StageInService: {
		"Post a behind-the-scenes service update",
		"Photograph completed reconditioning work",
		"Note completed services for the listing",
	},
	StageReadyForSale: {
		"Publish the full listing post with photos",
		"Highlight price and financing options",
		"Pin the listing on connected pages",
	},
	StageSold: {
		"Ask the buyer for a delivery photo",
		"Share a sold/congratulations post",
		"Request a review from the buyer",
	},
}

type Vehicle struct {
	ID           int64     `db:"id" json:"id"`
	DealershipID int64     `db:"dealership_id" json:"dealership_id"`
	Make         string    `db:"make" json:"make"`
	Model        string    `db:"model" json:"model"`
	Year         int       `db:"year" json:"year"`
	VIN          string    `db:"vin" json:"vin"`
	StockNumber  string    `db:"stock_number" json:"stock_number"`
	Price        int64     `db:"price" json:"price"` // cents
	Mileage      int       `db:"mileage" json:"mileage"`
	Color        string    `db:"color" json:"color"`
	Status       string    `db:"status" json:"status"`
	Archived     bool      `db:"archived" json:"archived"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
