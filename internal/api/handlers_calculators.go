package api

import (
	"github.com/aricheng/vitalcheck/internal/calc"
	"github.com/aricheng/vitalcheck/internal/models"
	"github.com/gofiber/fiber/v2"
)

// calculation is the outcome of one calculator run: what went in, the
// numeric results, and the advice sentence (empty for target heart rate).
type calculation struct {
	inputs  map[string]any
	outputs map[string]any
	advice  string
}

// Calculate computes a metric for anyone; a valid session additionally
// persists the result to the caller's history.
func (handler *Handler) Calculate(c *fiber.Ctx) error {
	kind := c.Params("kind")
	if !models.IsValidKind(kind) {
		return apiError(c, fiber.StatusNotFound, "unknown calculator")
	}

	result, err := handler.runCalculator(kind, c)
	if err != nil {
		return validationError(c, inputErrorDetails(err))
	}

	data := fiber.Map{}
	for key, value := range result.outputs {
		data[key] = value
	}
	if result.advice != "" {
		data["advice"] = result.advice
	}

	var recordID any
	savedToHistory := false
	if user, sessionErr := handler.resolveSession(c); sessionErr == nil {
		publicID, err := handler.recordService.SaveResult(kind, user.ID, result.inputs, result.outputs, result.advice, handler.now())
		if err != nil {
			handler.logger.Error().Err(err).Str("kind", kind).Msg("record save failed")
			return apiError(c, fiber.StatusInternalServerError, "failed to save calculation")
		}
		recordID = publicID
		savedToHistory = true
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"data":           data,
		"recordId":       recordID,
		"savedToHistory": savedToHistory,
	})
}

// History returns the caller's latest records for one calculator.
func (handler *Handler) History(c *fiber.Ctx) error {
	kind := c.Params("kind")
	if !models.IsValidKind(kind) {
		return apiError(c, fiber.StatusNotFound, "unknown calculator")
	}

	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "please log in")
	}

	records, err := handler.recordService.History(user.ID, kind)
	if err != nil {
		handler.logger.Error().Err(err).Str("kind", kind).Msg("history fetch failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch records")
	}
	return c.JSON(fiber.Map{"records": records})
}

// Dashboard returns the latest record of every kind for the caller.
func (handler *Handler) Dashboard(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "please log in")
	}

	latest, err := handler.recordService.Dashboard(user.ID)
	if err != nil {
		handler.logger.Error().Err(err).Msg("dashboard fetch failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch records")
	}
	return c.JSON(fiber.Map{"latest": latest})
}

func (handler *Handler) runCalculator(kind string, c *fiber.Ctx) (calculation, error) {
	switch kind {
	case models.KindBMI:
		return handler.runBMI(c)
	case models.KindBMR:
		return handler.runBMR(c)
	case models.KindBodyFat:
		return handler.runBodyFat(c)
	case models.KindWaistHip:
		return handler.runWaistHip(c)
	case models.KindBloodPressure:
		return handler.runBloodPressure(c)
	case models.KindTargetHeartRate:
		return handler.runTargetHeartRate(c)
	case models.KindSLI:
		return handler.runSLI(c)
	default:
		return handler.runCalorie(c)
	}
}

func (handler *Handler) runBMI(c *fiber.Ctx) (calculation, error) {
	input := bmiInput{}
	if err := handler.parseInto(c, &input); err != nil {
		return calculation{}, err
	}
	result := calc.BMI(input.Height, input.Weight)
	return calculation{
		inputs:  map[string]any{"gender": input.Gender, "height": input.Height, "weight": input.Weight},
		outputs: map[string]any{"bmi": result.BMI},
		advice:  result.Advice,
	}, nil
}

func (handler *Handler) runBMR(c *fiber.Ctx) (calculation, error) {
	input := bmrInput{}
	if err := handler.parseInto(c, &input); err != nil {
		return calculation{}, err
	}
	result := calc.BMR(input.Gender, input.Age, input.Height, input.Weight, input.ActivityLevel)
	return calculation{
		inputs: map[string]any{
			"gender":        input.Gender,
			"age":           input.Age,
			"height":        input.Height,
			"weight":        input.Weight,
			"activityLevel": input.ActivityLevel,
		},
		outputs: map[string]any{"bmr": result.BMR, "calorieNeeds": result.CalorieNeeds},
		advice:  result.Advice,
	}, nil
}

func (handler *Handler) runBodyFat(c *fiber.Ctx) (calculation, error) {
	input := bodyFatInput{}
	if err := handler.parseInto(c, &input); err != nil {
		return calculation{}, err
	}
	result := calc.BodyFat(input.Gender, input.Height, input.Waist, input.Hip)
	return calculation{
		inputs: map[string]any{
			"gender": input.Gender,
			"age":    input.Age,
			"height": input.Height,
			"weight": input.Weight,
			"waist":  input.Waist,
			"hip":    input.Hip,
		},
		outputs: map[string]any{"bodyFatPercentage": result.BodyFatPercentage},
		advice:  result.Advice,
	}, nil
}

func (handler *Handler) runWaistHip(c *fiber.Ctx) (calculation, error) {
	input := waistHipInput{}
	if err := handler.parseInto(c, &input); err != nil {
		return calculation{}, err
	}
	result := calc.WaistHipRatio(input.Gender, input.Waist, input.Hip)
	return calculation{
		inputs:  map[string]any{"gender": input.Gender, "waist": input.Waist, "hip": input.Hip},
		outputs: map[string]any{"ratio": result.Ratio},
		advice:  result.Advice,
	}, nil
}

func (handler *Handler) runBloodPressure(c *fiber.Ctx) (calculation, error) {
	input := bloodPressureInput{}
	if err := handler.parseInto(c, &input); err != nil {
		return calculation{}, err
	}
	result := calc.ClassifyBloodPressure(input.Systolic, input.Diastolic)
	return calculation{
		inputs:  map[string]any{"systolic": input.Systolic, "diastolic": input.Diastolic},
		outputs: map[string]any{"category": result.Category},
		advice:  result.Advice,
	}, nil
}

func (handler *Handler) runTargetHeartRate(c *fiber.Ctx) (calculation, error) {
	input := targetHeartRateInput{}
	if err := handler.parseInto(c, &input); err != nil {
		return calculation{}, err
	}
	result := calc.TargetHeartRate(input.Age)
	return calculation{
		inputs: map[string]any{"age": input.Age},
		outputs: map[string]any{
			"maxHeartRate": result.MaxHeartRate,
			"warmUpRange":  result.WarmUpRange,
			"fatBurnRange": result.FatBurnRange,
			"cardioRange":  result.CardioRange,
		},
	}, nil
}

func (handler *Handler) runSLI(c *fiber.Ctx) (calculation, error) {
	input := sliInput{}
	if err := handler.parseInto(c, &input); err != nil {
		return calculation{}, err
	}
	result := calc.SLI(input.Age, input.ExerciseHeartRate, input.RestingHeartRate, input.Duration)
	return calculation{
		inputs: map[string]any{
			"age":               input.Age,
			"exerciseHeartRate": input.ExerciseHeartRate,
			"restingHeartRate":  input.RestingHeartRate,
			"duration":          input.Duration,
		},
		outputs: map[string]any{"sli": result.SLI},
		advice:  result.Advice,
	}, nil
}

func (handler *Handler) runCalorie(c *fiber.Ctx) (calculation, error) {
	input := calorieInput{}
	if err := handler.parseInto(c, &input); err != nil {
		return calculation{}, err
	}
	result := calc.CalorieNeeds(input.Gender, input.Age, input.Height, input.Weight, input.ActivityLevel)
	return calculation{
		inputs: map[string]any{
			"gender":        input.Gender,
			"age":           input.Age,
			"height":        input.Height,
			"weight":        input.Weight,
			"activityLevel": input.ActivityLevel,
		},
		outputs: map[string]any{
			"maintenance": result.Maintenance,
			"deficit":     result.Deficit,
			"surplus":     result.Surplus,
		},
	}, nil
}
