package api

// Auth payloads.

type registerInput struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=20,username"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Code     string `json:"code" validate:"required,len=6,numeric"`
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sendCodeInput struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"required,oneof=register reset-password"`
}

type forgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordInput struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required,len=6,numeric"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// Calculator payloads. Range bounds double as the required check: a
// missing numeric field decodes to zero, which every lower bound rejects.

type bmiInput struct {
	Gender string  `json:"gender" validate:"required,oneof=male female"`
	Height float64 `json:"height" validate:"gte=50,lte=300"`
	Weight float64 `json:"weight" validate:"gte=20,lte=500"`
}

type bmrInput struct {
	Gender        string  `json:"gender" validate:"required,oneof=male female"`
	Age           float64 `json:"age" validate:"gte=10,lte=120"`
	Height        float64 `json:"height" validate:"gte=50,lte=300"`
	Weight        float64 `json:"weight" validate:"gte=20,lte=500"`
	ActivityLevel string  `json:"activityLevel" validate:"required,oneof=sedentary light moderate active veryActive"`
}

type bodyFatInput struct {
	Gender string  `json:"gender" validate:"required,oneof=male female"`
	Age    float64 `json:"age" validate:"gte=10,lte=120"`
	Height float64 `json:"height" validate:"gte=50,lte=300"`
	Weight float64 `json:"weight" validate:"gte=20,lte=500"`
	Waist  float64 `json:"waist" validate:"gte=30,lte=300"`
	Hip    float64 `json:"hip" validate:"gte=30,lte=300"`
}

type waistHipInput struct {
	Gender string  `json:"gender" validate:"required,oneof=male female"`
	Waist  float64 `json:"waist" validate:"gte=30,lte=300"`
	Hip    float64 `json:"hip" validate:"gte=30,lte=300"`
}

type bloodPressureInput struct {
	Systolic  float64 `json:"systolic" validate:"gte=50,lte=250"`
	Diastolic float64 `json:"diastolic" validate:"gte=30,lte=200"`
}

type targetHeartRateInput struct {
	Age float64 `json:"age" validate:"gte=10,lte=90"`
}

type sliInput struct {
	Age               float64 `json:"age" validate:"gte=10,lte=120"`
	ExerciseHeartRate float64 `json:"exerciseHeartRate" validate:"gte=60,lte=220"`
	RestingHeartRate  float64 `json:"restingHeartRate" validate:"gte=40,lte=120"`
	Duration          float64 `json:"duration" validate:"gte=1,lte=300"`
}

type calorieInput struct {
	Gender        string  `json:"gender" validate:"required,oneof=male female"`
	Age           float64 `json:"age" validate:"gte=10,lte=120"`
	Height        float64 `json:"height" validate:"gte=50,lte=300"`
	Weight        float64 `json:"weight" validate:"gte=20,lte=500"`
	ActivityLevel string  `json:"activityLevel" validate:"required,oneof=sedentary light moderate active veryActive"`
}

// Admin payloads.

type adminUpdateUserInput struct {
	Role     *string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
	IsActive *bool   `json:"isActive"`
}

type adminResetPasswordInput struct {
	NewPassword string `json:"newPassword" validate:"required,min=6,max=100"`
}
