package model

// SeatPlan is the seat-map payload for one flight as returned by the availability API.
type SeatPlan struct {
	AircraftType       string   `json:"AircraftType"`
	CurrencyCode       string   `json:"CurrencyCode"`
	Rows               []Row    `json:"Rows"`
	RestrictedSsrCodes []string `json:"RestrictedSsrCodes,omitempty"`
}

type Row struct {
	RowNumber     int     `json:"RowNumber"`
	IsOverWing    bool    `json:"IsOverWing"`
	PriceBandName string  `json:"PriceBandName"`
	Blocks        []Block `json:"Blocks"`
}

type Block struct {
	Seats []Seat `json:"Seats"`
}

type Seat struct {
	IsAvailable            bool    `json:"IsAvailable"`
	IsAvailableForInfant   bool    `json:"IsAvailableForInfant"`
	Price                  float64 `json:"Price"`
	PriceWithCreditCardFee float64 `json:"PriceWithCreditCardFee"`
	SeatAccess             string  `json:"SeatAccess"`
	SeatNumber             string  `json:"SeatNumber"`
	PriceBand              string  `json:"PriceBand"`
	PriceBandId            int     `json:"PriceBandId"`
}

// Letter returns the column letter, the trailing character of the seat number.
func (s Seat) Letter() string {
	runes := []rune(s.SeatNumber)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[len(runes)-1])
}
