package predict

// Field pairs a form field name with its display label.
type Field struct {
	Name  string
	Label string
}

// Fields lists the clinical measurements in the canonical order the model
// was trained on. Parsing and prediction both follow this order.
var Fields = []Field{
	{Name: "age", Label: "Age"},
	{Name: "sex", Label: "Sex (1 = male, 0 = female)"},
	{Name: "bmi", Label: "Body Mass Index (BMI)"},
	{Name: "bp", Label: "Blood Pressure"},
	{Name: "s1", Label: "Total Cholesterol"},
	{Name: "s2", Label: "LDL Cholesterol"},
	{Name: "s3", Label: "HDL Cholesterol"},
	{Name: "s4", Label: "Triglycerides"},
	{Name: "s5", Label: "Serum Glucose"},
	{Name: "s6", Label: "Insulin Level"},
}
