package services

import "gorm.io/gorm"

// Scope restricts which employees a query can see. The zero value sees every
// employee.
type Scope struct {
	AdminID    *uint
	EmployeeID *uint
}

func AdminScope(adminID uint) Scope {
	return Scope{AdminID: &adminID}
}

func EmployeeScope(employeeID uint) Scope {
	return Scope{EmployeeID: &employeeID}
}

func Unscoped() Scope {
	return Scope{}
}

// apply adds the scope predicates against the employees table (or alias).
func (s Scope) apply(db *gorm.DB, table string) *gorm.DB {
	if s.AdminID != nil {
		db = db.Where(table+".admin_id = ?", *s.AdminID)
	}
	if s.EmployeeID != nil {
		db = db.Where(table+".id = ?", *s.EmployeeID)
	}
	return db
}

// sql renders the scope as a raw predicate for hand written queries.
func (s Scope) sql(table string) (string, []interface{}) {
	clause := "1 = 1"
	var args []interface{}
	if s.AdminID != nil {
		clause += " AND " + table + ".admin_id = ?"
		args = append(args, *s.AdminID)
	}
	if s.EmployeeID != nil {
		clause += " AND " + table + ".id = ?"
		args = append(args, *s.EmployeeID)
	}
	return clause, args
}
