// internal/sink/record.go
package sink

import "github.com/tamzrod/plc-trigger-logger/internal/register"

// ProductionRecord is one row of production_logs.
// Created once per trigger activation, never updated or deleted here.
// Field order is column order.
type ProductionRecord struct {
	UnitID     int    `gorm:"column:unit_id;not null"`
	ID1Counter uint16 `gorm:"column:ID1_Counter"`
	ID2Counter uint16 `gorm:"column:ID2_Counter"`
	OKCounter  uint16 `gorm:"column:OK_Counter"`
	NGCounter  uint16 `gorm:"column:NG_Counter"`
	AllCounter uint16 `gorm:"column:All_Counter"`
	Efficiency uint16 `gorm:"column:Efficiency"`
	CycleTime  uint16 `gorm:"column:Cycle_Time"`
}

func (ProductionRecord) TableName() string { return "production_logs" }

// newRecord maps register values verbatim, no unit conversion.
// values must hold at least register.ProductionFields entries.
func newRecord(unitID uint8, values []uint16) ProductionRecord {
	return ProductionRecord{
		UnitID:     int(unitID),
		ID1Counter: values[register.IndexID1Counter],
		ID2Counter: values[register.IndexID2Counter],
		OKCounter:  values[register.IndexOKCounter],
		NGCounter:  values[register.IndexNGCounter],
		AllCounter: values[register.IndexAllCounter],
		Efficiency: values[register.IndexEfficiency],
		CycleTime:  values[register.IndexCycleTime],
	}
}
