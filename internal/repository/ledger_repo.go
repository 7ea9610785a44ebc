package repository

import "crew-ledger/internal/models"

func (c *Collections) Transactions() ([]models.Transaction, error) {
	return load[models.Transaction](c.store, KeyTransactions)
}

func (c *Collections) SaveTransactions(txs []models.Transaction) error {
	return save(c.store, KeyTransactions, txs)
}

func (c *Collections) AddTransaction(tx models.Transaction) error {
	return appendTo(c.store, KeyTransactions, tx)
}

func (c *Collections) Attendance() ([]models.AttendanceRecord, error) {
	return load[models.AttendanceRecord](c.store, KeyAttendance)
}

func (c *Collections) SaveAttendance(records []models.AttendanceRecord) error {
	return save(c.store, KeyAttendance, records)
}

func (c *Collections) AddAttendance(record models.AttendanceRecord) error {
	return appendTo(c.store, KeyAttendance, record)
}

func (c *Collections) Overtime() ([]models.OvertimeRecord, error) {
	return load[models.OvertimeRecord](c.store, KeyOvertime)
}

func (c *Collections) AddOvertime(record models.OvertimeRecord) error {
	return appendTo(c.store, KeyOvertime, record)
}

func (c *Collections) Projects() ([]models.Project, error) {
	return load[models.Project](c.store, KeyProjects)
}

func (c *Collections) AddProject(project models.Project) error {
	return appendTo(c.store, KeyProjects, project)
}

func (c *Collections) Materials() ([]models.Material, error) {
	return load[models.Material](c.store, KeyMaterials)
}

func (c *Collections) AddMaterial(material models.Material) error {
	return appendTo(c.store, KeyMaterials, material)
}
