package rate

import (
	"github.com/peppertree17/booking-service/pkg/txmanager"
)

// Executor интерфейс исполнителя запросов (БД или транзакция из контекста)
type Executor = txmanager.Executor
