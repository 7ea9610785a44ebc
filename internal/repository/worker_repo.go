package repository

import "crew-ledger/internal/models"

func (c *Collections) Workers() ([]models.Worker, error) {
	return load[models.Worker](c.store, KeyWorkers)
}

func (c *Collections) SaveWorkers(workers []models.Worker) error {
	return save(c.store, KeyWorkers, workers)
}

func (c *Collections) AddWorker(worker models.Worker) error {
	return appendTo(c.store, KeyWorkers, worker)
}

// FindWorker ищет работника по ID
func (c *Collections) FindWorker(id string) (*models.Worker, error) {
	workers, err := c.Workers()
	if err != nil {
		return nil, err
	}
	for i := range workers {
		if workers[i].ID == id {
			return &workers[i], nil
		}
	}
	return nil, ErrNotFound
}

// UpdateWorker заменяет сохраненного работника с тем же ID
func (c *Collections) UpdateWorker(worker models.Worker) error {
	workers, err := c.Workers()
	if err != nil {
		return err
	}
	for i := range workers {
		if workers[i].ID == worker.ID {
			workers[i] = worker
			return c.SaveWorkers(workers)
		}
	}
	return ErrNotFound
}

// ActiveWorkers возвращает работников, не переведенных в архив
func (c *Collections) ActiveWorkers() ([]models.Worker, error) {
	workers, err := c.Workers()
	if err != nil {
		return nil, err
	}
	active := make([]models.Worker, 0, len(workers))
	for _, w := range workers {
		if w.IsActive && !w.IsArchived() {
			active = append(active, w)
		}
	}
	return active, nil
}
