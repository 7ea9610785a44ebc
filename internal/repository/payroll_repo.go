package repository

import "crew-ledger/internal/models"

func (c *Collections) Payroll() ([]models.PayrollRecord, error) {
	return load[models.PayrollRecord](c.store, KeyPayroll)
}

func (c *Collections) SavePayroll(records []models.PayrollRecord) error {
	return save(c.store, KeyPayroll, records)
}

// FindPayroll ищет ведомость работника за период; nil если ее нет
func (c *Collections) FindPayroll(workerID, period string) (*models.PayrollRecord, error) {
	records, err := c.Payroll()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].WorkerID == workerID && records[i].Period == period {
			return &records[i], nil
		}
	}
	return nil, nil
}

// UpsertPayroll сохраняет ведомость, заменяя существующую за тот же период.
// Возвращает true, если старая запись была перезаписана.
func (c *Collections) UpsertPayroll(record models.PayrollRecord) (bool, error) {
	records, err := c.Payroll()
	if err != nil {
		return false, err
	}
	for i := range records {
		if records[i].WorkerID == record.WorkerID && records[i].Period == record.Period {
			records[i] = record
			return true, c.SavePayroll(records)
		}
	}
	return false, c.SavePayroll(append(records, record))
}

// PayrollForPeriod возвращает ведомости за месяц YYYY-MM
func (c *Collections) PayrollForPeriod(period string) ([]models.PayrollRecord, error) {
	records, err := c.Payroll()
	if err != nil {
		return nil, err
	}
	var out []models.PayrollRecord
	for _, r := range records {
		if r.Period == period {
			out = append(out, r)
		}
	}
	return out, nil
}
