package testutil

import "seatplan-viewer-cli/model"

// TwinBlockPlanJSON is a one-row plan with two blocks of three seats.
const TwinBlockPlanJSON = `{
  "AircraftType": "A320",
  "CurrencyCode": "EUR",
  "Rows": [
    {
      "RowNumber": 14,
      "IsOverWing": false,
      "PriceBandName": "Standard",
      "Blocks": [
        {"Seats": [
          {"SeatNumber": "14A", "IsAvailable": true, "IsAvailableForInfant": false, "Price": 12.5, "PriceWithCreditCardFee": 12.5, "SeatAccess": "Unrestricted", "PriceBand": "Extra legroom", "PriceBandId": 3},
          {"SeatNumber": "14B", "IsAvailable": false, "IsAvailableForInfant": false, "Price": 9, "PriceWithCreditCardFee": 9, "SeatAccess": "Unrestricted", "PriceBand": "", "PriceBandId": 1},
          {"SeatNumber": "14C", "IsAvailable": true, "IsAvailableForInfant": true, "Price": 9, "PriceWithCreditCardFee": 9, "SeatAccess": "Restricted", "PriceBand": "", "PriceBandId": 1}
        ]},
        {"Seats": [
          {"SeatNumber": "14D", "IsAvailable": true, "IsAvailableForInfant": true, "Price": 9, "PriceWithCreditCardFee": 9, "SeatAccess": "Unrestricted", "PriceBand": "Standard", "PriceBandId": 1},
          {"SeatNumber": "14E", "IsAvailable": false, "IsAvailableForInfant": false, "Price": 9, "PriceWithCreditCardFee": 9, "SeatAccess": "Unrestricted", "PriceBand": "Standard", "PriceBandId": 1},
          {"SeatNumber": "14F", "IsAvailable": true, "IsAvailableForInfant": false, "Price": 11, "PriceWithCreditCardFee": 11, "SeatAccess": "Unrestricted", "PriceBand": "Up front", "PriceBandId": 2}
        ]}
      ]
    }
  ]
}`

// Seat builds a seat with the given number and availability.
func Seat(number string, available bool) model.Seat {
	return model.Seat{
		SeatNumber:  number,
		IsAvailable: available,
		Price:       9,
		SeatAccess:  "Unrestricted",
	}
}

// Row builds a row from blocks of seat numbers; every seat is available.
func Row(number int, blocks ...[]string) model.Row {
	row := model.Row{RowNumber: number}
	for _, numbers := range blocks {
		var block model.Block
		for _, n := range numbers {
			block.Seats = append(block.Seats, Seat(n, true))
		}
		row.Blocks = append(row.Blocks, block)
	}
	return row
}
