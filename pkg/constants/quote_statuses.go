package constants

// --- СТАТУСЫ КП (Совпадает со значениями в БД) ---
const (
	StatusDraft          = "draft"
	StatusCalculated     = "calculated"
	StatusApproved       = "approved"
	StatusWarehouseCheck = "warehouse_check"
	StatusRework         = "rework"
	StatusConfirmed      = "confirmed"
)

// --- РОЛИ ПОЛЬЗОВАТЕЛЕЙ ---
const (
	RoleManager   = "manager"
	RoleWarehouse = "warehouse"
	RoleAdmin     = "admin"
)

// Transition описывает один разрешённый переход статуса КП.
type Transition struct {
	Target      string
	Roles       []string
	Label       string
	Destructive bool
}

// transitionTable — единственный авторитетный источник разрешённых переходов.
// Фронтенд дублирует эту таблицу только как подсказку для UI,
// проверка всегда выполняется здесь.
var transitionTable = map[string][]Transition{
	StatusCalculated: {
		{Target: StatusApproved, Roles: []string{RoleManager, RoleAdmin}, Label: "Согласовать с заказчиком"},
	},
	StatusApproved: {
		{Target: StatusWarehouseCheck, Roles: []string{RoleManager, RoleAdmin}, Label: "Отправить на проверку склада"},
	},
	StatusWarehouseCheck: {
		{Target: StatusConfirmed, Roles: []string{RoleWarehouse, RoleAdmin}, Label: "Подтвердить"},
		{Target: StatusRework, Roles: []string{RoleWarehouse, RoleAdmin}, Label: "Вернуть на доработку", Destructive: true},
	},
	// draft и rework выходят из своего статуса только через расчет,
	// confirmed — терминальный статус.
}

// Статусы, в которых КП можно редактировать и пересчитывать.
var EditableStatuses = []string{StatusDraft, StatusRework}
var CalculableStatuses = []string{StatusDraft, StatusRework}

// TransitionsFor возвращает список переходов, доступных из статуса.
// Для неизвестного статуса возвращается пустой список, а не ошибка.
func TransitionsFor(status string) []Transition {
	return transitionTable[status]
}

// CanTransition проверяет, разрешён ли переход from -> to для роли.
func CanTransition(role, from, to string) bool {
	for _, tr := range transitionTable[from] {
		if tr.Target != to {
			continue
		}
		for _, r := range tr.Roles {
			if r == role {
				return true
			}
		}
	}
	return false
}

// TransitionExists проверяет, что переход from -> to вообще есть в таблице,
// независимо от роли. Нужна, чтобы отличать 409 (перехода нет) от 403 (нет прав).
func TransitionExists(from, to string) bool {
	for _, tr := range transitionTable[from] {
		if tr.Target == to {
			return true
		}
	}
	return false
}

func IsEditableStatus(status string) bool {
	for _, s := range EditableStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsCalculableStatus(status string) bool {
	for _, s := range CalculableStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsKnownStatus(status string) bool {
	switch status {
	case StatusDraft, StatusCalculated, StatusApproved, StatusWarehouseCheck, StatusRework, StatusConfirmed:
		return true
	}
	return false
}

// --- СТАТУСЫ НАЛИЧИЯ (проверка склада) ---
const (
	AvailabilityInStock = "in_stock"
	AvailabilityToOrder = "to_order"
	AvailabilityAbsent  = "absent"
)

func IsKnownAvailability(status string) bool {
	switch status {
	case AvailabilityInStock, AvailabilityToOrder, AvailabilityAbsent:
		return true
	}
	return false
}
