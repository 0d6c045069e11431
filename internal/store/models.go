package store

import "time"

// PredictionRecord persists one successful prediction: the ten clinical
// inputs in canonical order plus the model's estimate.
type PredictionRecord struct {
	ID         uint    `gorm:"primaryKey"`
	Age        float64 `gorm:"column:age"`
	Sex        float64 `gorm:"column:sex"`
	BMI        float64 `gorm:"column:bmi"`
	BP         float64 `gorm:"column:bp"`
	S1         float64 `gorm:"column:s1"`
	S2         float64 `gorm:"column:s2"`
	S3         float64 `gorm:"column:s3"`
	S4         float64 `gorm:"column:s4"`
	S5         float64 `gorm:"column:s5"`
	S6         float64 `gorm:"column:s6"`
	Prediction float64 `gorm:"index"`
	CreatedAt  time.Time
}

// Features returns the stored inputs in canonical feature order.
func (r PredictionRecord) Features() []float64 {
	return []float64{r.Age, r.Sex, r.BMI, r.BP, r.S1, r.S2, r.S3, r.S4, r.S5, r.S6}
}

// RecordFromFeatures builds a record from a canonical-order feature vector.
// Vectors of the wrong arity yield a zero record; the caller validates
// arity before persisting.
func RecordFromFeatures(features []float64, prediction float64) PredictionRecord {
	record := PredictionRecord{Prediction: prediction}
	if len(features) != 10 {
		return record
	}
	record.Age = features[0]
	record.Sex = features[1]
	record.BMI = features[2]
	record.BP = features[3]
	record.S1 = features[4]
	record.S2 = features[5]
	record.S3 = features[6]
	record.S4 = features[7]
	record.S5 = features[8]
	record.S6 = features[9]
	return record
}
