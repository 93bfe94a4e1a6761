package service

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/seatplan.json
var seatPlanSchemaJSON []byte

const maxSchemaProblems = 5

var (
	seatPlanSchemaOnce sync.Once
	seatPlanSchema     *gojsonschema.Schema
	seatPlanSchemaErr  error
)

func loadSeatPlanSchema() (*gojsonschema.Schema, error) {
	seatPlanSchemaOnce.Do(func() {
		seatPlanSchema, seatPlanSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(seatPlanSchemaJSON))
	})
	return seatPlanSchema, seatPlanSchemaErr
}

// validateSeatPlan checks a response body against the seat plan schema so a
// malformed payload fails here instead of inside the renderer.
func validateSeatPlan(body []byte) error {
	schema, err := loadSeatPlanSchema()
	if err != nil {
		return fmt.Errorf("load seat plan schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &MalformedPlanError{Problems: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, resultErr := range result.Errors() {
		problems = append(problems, resultErr.String())
		if len(problems) == maxSchemaProblems {
			break
		}
	}
	return &MalformedPlanError{Problems: problems}
}
