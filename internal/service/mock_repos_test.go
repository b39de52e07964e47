package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"sistema-rh/backend/internal/model"
	"sistema-rh/backend/internal/repository"
	apperrors "sistema-rh/backend/pkg/errors"
)

// scopeAllows 模拟 Scope 过滤：租户必须匹配，受限时部门须在集合内
func scopeAllows(scope repository.Scope, tenantID, departmentID string) bool {
	if scope.TenantID != tenantID {
		return false
	}
	if scope.DepartmentIDs == nil {
		return true
	}
	for _, id := range scope.DepartmentIDs {
		if id == departmentID {
			return true
		}
	}
	return false
}

// ── Mock TenantRepository ──

type mockTenantRepo struct {
	tenants map[string]*model.Tenant
}

func newMockTenantRepo() *mockTenantRepo {
	return &mockTenantRepo{tenants: make(map[string]*model.Tenant)}
}

func (m *mockTenantRepo) Create(_ context.Context, tenant *model.Tenant) error {
	if tenant.TenantID == "" {
		tenant.TenantID = "tenant-" + tenant.CNPJ
	}
	m.tenants[tenant.TenantID] = tenant
	return nil
}

func (m *mockTenantRepo) GetByID(_ context.Context, id string) (*model.Tenant, error) {
	if t, ok := m.tenants[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTenantRepo) GetByCNPJ(_ context.Context, cnpj string) (*model.Tenant, error) {
	for _, t := range m.tenants {
		if t.CNPJ == cnpj {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTenantRepo) List(_ context.Context, offset, limit int) ([]model.Tenant, int64, error) {
	var all []model.Tenant
	for _, t := range m.tenants {
		all = append(all, *t)
	}
	return pageSlice(all, offset, limit), int64(len(all)), nil
}

func (m *mockTenantRepo) Update(_ context.Context, tenant *model.Tenant) error {
	m.tenants[tenant.TenantID] = tenant
	return nil
}

func (m *mockTenantRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.tenants, id)
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users   map[string]*model.User
	nextSeq int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.nextSeq++
		user.UserID = fmt.Sprintf("user-%d", m.nextSeq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, tenantID, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok && u.TenantID == tenantID {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, tenantID string, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if u.TenantID != tenantID {
			continue
		}
		if filters != nil {
			if filters.Role != "" && u.Role != filters.Role {
				continue
			}
			if filters.Status != "" && u.Status != filters.Status {
				continue
			}
			if filters.Search != "" && !strings.Contains(u.Name, filters.Search) && !strings.Contains(u.Email, filters.Search) {
				continue
			}
		}
		all = append(all, *u)
	}
	return pageSlice(all, offset, limit), int64(len(all)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, tenantID, id string, _ string) error {
	if u, ok := m.users[id]; ok && u.TenantID == tenantID {
		delete(m.users, id)
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockUserRepo) BumpTokenVersion(_ context.Context, tenantID, id string) error {
	if u, ok := m.users[id]; ok && u.TenantID == tenantID {
		u.TokenVersion++
		return nil
	}
	return nil
}

func (m *mockUserRepo) TouchLastAccess(_ context.Context, id string, at time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastAccessAt = &at
	}
	return nil
}

// ── Mock DepartmentRepository ──

type mockDepartmentRepo struct {
	departments map[string]*model.Department
	employees   *mockEmployeeRepo
	nextSeq     int
}

func newMockDepartmentRepo(employees *mockEmployeeRepo) *mockDepartmentRepo {
	return &mockDepartmentRepo{departments: make(map[string]*model.Department), employees: employees}
}

func (m *mockDepartmentRepo) Create(_ context.Context, dept *model.Department) error {
	if dept.DepartmentID == "" {
		m.nextSeq++
		dept.DepartmentID = fmt.Sprintf("dept-%d", m.nextSeq)
	}
	m.departments[dept.DepartmentID] = dept
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, scope repository.Scope, id string) (*model.Department, error) {
	if d, ok := m.departments[id]; ok && scopeAllows(scope, d.TenantID, d.DepartmentID) {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) GetByName(_ context.Context, tenantID, name string) (*model.Department, error) {
	for _, d := range m.departments {
		if d.TenantID == tenantID && d.Name == name {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) List(_ context.Context, scope repository.Scope, filters *repository.DepartmentListFilters, offset, limit int) ([]model.Department, int64, error) {
	var all []model.Department
	for _, d := range m.departments {
		if !scopeAllows(scope, d.TenantID, d.DepartmentID) {
			continue
		}
		if filters != nil {
			if filters.Status != "" && d.Status != filters.Status {
				continue
			}
			if filters.Search != "" && !strings.Contains(d.Name, filters.Search) && !strings.Contains(d.CostCenter, filters.Search) {
				continue
			}
		}
		all = append(all, *d)
	}
	return pageSlice(all, offset, limit), int64(len(all)), nil
}

func (m *mockDepartmentRepo) Update(_ context.Context, dept *model.Department) error {
	m.departments[dept.DepartmentID] = dept
	return nil
}

func (m *mockDepartmentRepo) Delete(_ context.Context, tenantID, id string, _ string) error {
	if d, ok := m.departments[id]; ok && d.TenantID == tenantID {
		delete(m.departments, id)
	}
	return nil
}

func (m *mockDepartmentRepo) CountEmployees(_ context.Context, tenantID, departmentID string) (int64, error) {
	var count int64
	for _, e := range m.employees.employees {
		if e.TenantID == tenantID && e.DepartmentID == departmentID {
			count++
		}
	}
	return count, nil
}

func (m *mockDepartmentRepo) CountChildren(_ context.Context, tenantID, departmentID string) (int64, error) {
	var count int64
	for _, d := range m.departments {
		if d.TenantID == tenantID && d.ParentDepartmentID != nil && *d.ParentDepartmentID == departmentID {
			count++
		}
	}
	return count, nil
}

// ── Mock PositionRepository ──

type mockPositionRepo struct {
	positions map[string]*model.Position
	employees *mockEmployeeRepo
	nextSeq   int
}

func newMockPositionRepo(employees *mockEmployeeRepo) *mockPositionRepo {
	return &mockPositionRepo{positions: make(map[string]*model.Position), employees: employees}
}

func (m *mockPositionRepo) Create(_ context.Context, pos *model.Position) error {
	if pos.PositionID == "" {
		m.nextSeq++
		pos.PositionID = fmt.Sprintf("pos-%d", m.nextSeq)
	}
	m.positions[pos.PositionID] = pos
	return nil
}

func (m *mockPositionRepo) GetByID(_ context.Context, scope repository.Scope, id string) (*model.Position, error) {
	if p, ok := m.positions[id]; ok && scopeAllows(scope, p.TenantID, p.DepartmentID) {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPositionRepo) List(_ context.Context, scope repository.Scope, filters *repository.PositionListFilters, offset, limit int) ([]model.Position, int64, error) {
	var all []model.Position
	for _, p := range m.positions {
		if !scopeAllows(scope, p.TenantID, p.DepartmentID) {
			continue
		}
		if filters != nil {
			if filters.DepartmentID != "" && p.DepartmentID != filters.DepartmentID {
				continue
			}
			if filters.Level != "" && p.Level != filters.Level {
				continue
			}
			if filters.Search != "" && !strings.Contains(p.Title, filters.Search) {
				continue
			}
		}
		all = append(all, *p)
	}
	return pageSlice(all, offset, limit), int64(len(all)), nil
}

func (m *mockPositionRepo) Update(_ context.Context, pos *model.Position) error {
	m.positions[pos.PositionID] = pos
	return nil
}

func (m *mockPositionRepo) Delete(_ context.Context, tenantID, id string, _ string) error {
	if p, ok := m.positions[id]; ok && p.TenantID == tenantID {
		delete(m.positions, id)
	}
	return nil
}

func (m *mockPositionRepo) ExistsDuplicate(_ context.Context, tenantID, title, level, departmentID, excludeID string) (bool, error) {
	for _, p := range m.positions {
		if p.TenantID == tenantID && p.Title == title && p.Level == level &&
			p.DepartmentID == departmentID && p.PositionID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockPositionRepo) CountEmployees(_ context.Context, tenantID, positionID string) (int64, error) {
	var count int64
	for _, e := range m.employees.employees {
		if e.TenantID == tenantID && e.PositionID == positionID {
			count++
		}
	}
	return count, nil
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee
	nextSeq   int
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) Create(_ context.Context, emp *model.Employee) error {
	if emp.EmployeeID == "" {
		m.nextSeq++
		emp.EmployeeID = fmt.Sprintf("emp-%d", m.nextSeq)
	}
	m.employees[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, scope repository.Scope, id string) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok && scopeAllows(scope, e.TenantID, e.DepartmentID) {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByCPFHash(_ context.Context, tenantID, cpfHash string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.TenantID == tenantID && e.CPFHash == cpfHash {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByEmail(_ context.Context, tenantID, email string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.TenantID == tenantID && e.Email == email {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context, scope repository.Scope, filters *repository.EmployeeListFilters, offset, limit int) ([]model.Employee, int64, error) {
	var all []model.Employee
	for _, e := range m.employees {
		if !scopeAllows(scope, e.TenantID, e.DepartmentID) {
			continue
		}
		if filters != nil {
			if filters.DepartmentID != "" && e.DepartmentID != filters.DepartmentID {
				continue
			}
			if filters.PositionID != "" && e.PositionID != filters.PositionID {
				continue
			}
			if filters.Status != "" && e.Status != filters.Status {
				continue
			}
			if filters.WorkModality != "" && e.WorkModality != filters.WorkModality {
				continue
			}
			if filters.Search != "" && !strings.Contains(e.Name, filters.Search) && !strings.Contains(e.Email, filters.Search) {
				continue
			}
		}
		all = append(all, *e)
	}
	return pageSlice(all, offset, limit), int64(len(all)), nil
}

func (m *mockEmployeeRepo) ListAll(ctx context.Context, scope repository.Scope) ([]model.Employee, error) {
	all, _, err := m.List(ctx, scope, nil, 0, len(m.employees)+1)
	return all, err
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp *model.Employee) error {
	m.employees[emp.EmployeeID] = emp
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, tenantID, id string, _ string) error {
	if e, ok := m.employees[id]; ok && e.TenantID == tenantID {
		delete(m.employees, id)
	}
	return nil
}

// applyUpdates 模拟 GORM Updates(map) 套用到员工记录
func (m *mockEmployeeRepo) applyUpdates(tenantID, employeeID string, updates map[string]interface{}) error {
	e, ok := m.employees[employeeID]
	if !ok || e.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	for col, v := range updates {
		switch col {
		case "position_id":
			e.PositionID = v.(string)
		case "department_id":
			e.DepartmentID = v.(string)
		case "salary":
			e.Salary = v.(float64)
		case "work_modality":
			e.WorkModality = v.(string)
		case "weekly_hours":
			e.WeeklyHours = v.(int)
		}
	}
	return nil
}

// ── Mock SalaryTableRepository ──

type mockSalaryTableRepo struct {
	tables    map[string]*model.SalaryTable
	positions *mockPositionRepo
	nextSeq   int
}

func newMockSalaryTableRepo(positions *mockPositionRepo) *mockSalaryTableRepo {
	return &mockSalaryTableRepo{tables: make(map[string]*model.SalaryTable), positions: positions}
}

// departmentOf 解析基准所挂职位的部门；职位缺失视为无部门（受限范围下不可见）
func (m *mockSalaryTableRepo) departmentOf(st *model.SalaryTable) string {
	if pos, ok := m.positions.positions[st.PositionID]; ok {
		return pos.DepartmentID
	}
	return ""
}

func (m *mockSalaryTableRepo) Create(_ context.Context, st *model.SalaryTable) error {
	if st.SalaryTableID == "" {
		m.nextSeq++
		st.SalaryTableID = fmt.Sprintf("st-%d", m.nextSeq)
	}
	m.tables[st.SalaryTableID] = st
	return nil
}

func (m *mockSalaryTableRepo) GetByID(_ context.Context, scope repository.Scope, id string) (*model.SalaryTable, error) {
	if st, ok := m.tables[id]; ok && scopeAllows(scope, st.TenantID, m.departmentOf(st)) {
		return st, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSalaryTableRepo) GetByPositionLevel(_ context.Context, tenantID, positionID, level string) (*model.SalaryTable, error) {
	for _, st := range m.tables {
		if st.TenantID == tenantID && st.PositionID == positionID && st.Level == level {
			return st, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSalaryTableRepo) List(_ context.Context, scope repository.Scope, filters *repository.SalaryTableListFilters, offset, limit int) ([]model.SalaryTable, int64, error) {
	var all []model.SalaryTable
	for _, st := range m.tables {
		if !scopeAllows(scope, st.TenantID, m.departmentOf(st)) {
			continue
		}
		if filters != nil {
			if filters.PositionID != "" && st.PositionID != filters.PositionID {
				continue
			}
			if filters.Level != "" && st.Level != filters.Level {
				continue
			}
		}
		all = append(all, *st)
	}
	return pageSlice(all, offset, limit), int64(len(all)), nil
}

func (m *mockSalaryTableRepo) Update(_ context.Context, st *model.SalaryTable) error {
	m.tables[st.SalaryTableID] = st
	return nil
}

func (m *mockSalaryTableRepo) Delete(_ context.Context, tenantID, id string, _ string) error {
	if st, ok := m.tables[id]; ok && st.TenantID == tenantID {
		delete(m.tables, id)
	}
	return nil
}

// ── Mock MovementRepository ──

// mockMovementRepo 模拟 CAS 语义：只有 pending 状态的记录能被翻转，
// 否则返回 apperrors.ErrStateConflict，与 GORM 实现行为一致
type mockMovementRepo struct {
	movements map[string]*model.Movement
	employees *mockEmployeeRepo
	nextSeq   int
}

func newMockMovementRepo(employees *mockEmployeeRepo) *mockMovementRepo {
	return &mockMovementRepo{movements: make(map[string]*model.Movement), employees: employees}
}

func (m *mockMovementRepo) Create(_ context.Context, mov *model.Movement) error {
	if mov.MovementID == "" {
		m.nextSeq++
		mov.MovementID = fmt.Sprintf("mov-%d", m.nextSeq)
	}
	m.movements[mov.MovementID] = mov
	return nil
}

func (m *mockMovementRepo) CreateApproved(ctx context.Context, mov *model.Movement, employeeUpdates map[string]interface{}) error {
	if err := m.Create(ctx, mov); err != nil {
		return err
	}
	return m.employees.applyUpdates(mov.TenantID, mov.EmployeeID, employeeUpdates)
}

func (m *mockMovementRepo) inScope(mov *model.Movement, scope repository.Scope) bool {
	if mov.TenantID != scope.TenantID {
		return false
	}
	if scope.DepartmentIDs == nil {
		return true
	}
	emp, ok := m.employees.employees[mov.EmployeeID]
	if !ok {
		return false
	}
	return scopeAllows(scope, emp.TenantID, emp.DepartmentID)
}

func (m *mockMovementRepo) GetByID(_ context.Context, scope repository.Scope, id string) (*model.Movement, error) {
	if mov, ok := m.movements[id]; ok && m.inScope(mov, scope) {
		if emp, ok := m.employees.employees[mov.EmployeeID]; ok {
			mov.Employee = emp
		}
		return mov, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMovementRepo) List(_ context.Context, scope repository.Scope, filters *repository.MovementListFilters, offset, limit int) ([]model.Movement, int64, error) {
	var all []model.Movement
	for _, mov := range m.movements {
		if !m.inScope(mov, scope) {
			continue
		}
		if filters != nil {
			if filters.EmployeeID != "" && mov.EmployeeID != filters.EmployeeID {
				continue
			}
			if filters.Type != "" && mov.Type != filters.Type {
				continue
			}
			if filters.Status != "" && mov.Status != filters.Status {
				continue
			}
		}
		all = append(all, *mov)
	}
	return pageSlice(all, offset, limit), int64(len(all)), nil
}

func (m *mockMovementRepo) ListAll(ctx context.Context, scope repository.Scope) ([]model.Movement, error) {
	all, _, err := m.List(ctx, scope, nil, 0, len(m.movements)+1)
	return all, err
}

func (m *mockMovementRepo) ApproveAndApply(_ context.Context, tenantID, movementID, employeeID, approverID string, at time.Time, employeeUpdates map[string]interface{}) error {
	mov, ok := m.movements[movementID]
	if !ok || mov.TenantID != tenantID || mov.Status != model.MovementStatusPending {
		return apperrors.ErrStateConflict
	}
	mov.Status = model.MovementStatusApproved
	mov.ApproverID = &approverID
	mov.ProcessedAt = &at
	return m.employees.applyUpdates(tenantID, employeeID, employeeUpdates)
}

func (m *mockMovementRepo) Reject(_ context.Context, tenantID, movementID, approverID string, at time.Time, notes string) error {
	mov, ok := m.movements[movementID]
	if !ok || mov.TenantID != tenantID || mov.Status != model.MovementStatusPending {
		return apperrors.ErrStateConflict
	}
	mov.Status = model.MovementStatusRejected
	mov.ApproverID = &approverID
	mov.ProcessedAt = &at
	mov.Notes = notes
	return nil
}

// ── Mock DashboardRepository（基于员工/异动 mock 计算）──

type mockDashboardRepo struct {
	employees *mockEmployeeRepo
	movements *mockMovementRepo
}

func newMockDashboardRepo(employees *mockEmployeeRepo, movements *mockMovementRepo) *mockDashboardRepo {
	return &mockDashboardRepo{employees: employees, movements: movements}
}

func (m *mockDashboardRepo) CountEmployees(_ context.Context, scope repository.Scope, status string) (int64, error) {
	var count int64
	for _, e := range m.employees.employees {
		if !scopeAllows(scope, e.TenantID, e.DepartmentID) {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockDashboardRepo) CountPendingMovements(_ context.Context, scope repository.Scope) (int64, error) {
	var count int64
	for _, mov := range m.movements.movements {
		if mov.Status == model.MovementStatusPending && m.movements.inScope(mov, scope) {
			count++
		}
	}
	return count, nil
}

func (m *mockDashboardRepo) PayrollTotal(_ context.Context, scope repository.Scope) (float64, error) {
	var total float64
	for _, e := range m.employees.employees {
		if e.Status == model.EmployeeStatusActive && scopeAllows(scope, e.TenantID, e.DepartmentID) {
			total += e.Salary
		}
	}
	return total, nil
}

func (m *mockDashboardRepo) HeadcountByDepartment(_ context.Context, scope repository.Scope) ([]repository.HeadcountRow, error) {
	counts := make(map[string]int64)
	for _, e := range m.employees.employees {
		if e.Status == model.EmployeeStatusActive && scopeAllows(scope, e.TenantID, e.DepartmentID) {
			counts[e.DepartmentID]++
		}
	}
	var rows []repository.HeadcountRow
	for deptID, count := range counts {
		rows = append(rows, repository.HeadcountRow{DepartmentID: deptID, Count: count})
	}
	return rows, nil
}

func (m *mockDashboardRepo) AdmissionsByMonth(_ context.Context, scope repository.Scope, year int) ([]repository.MonthCountRow, error) {
	counts := make(map[string]int64)
	for _, e := range m.employees.employees {
		if scopeAllows(scope, e.TenantID, e.DepartmentID) && e.AdmissionDate.Year() == year {
			counts[e.AdmissionDate.Format("2006-01")]++
		}
	}
	return monthRows(counts), nil
}

func (m *mockDashboardRepo) TerminationsByMonth(_ context.Context, scope repository.Scope, year int) ([]repository.MonthCountRow, error) {
	counts := make(map[string]int64)
	for _, e := range m.employees.employees {
		if e.TerminationDate != nil && scopeAllows(scope, e.TenantID, e.DepartmentID) && e.TerminationDate.Year() == year {
			counts[e.TerminationDate.Format("2006-01")]++
		}
	}
	return monthRows(counts), nil
}

func (m *mockDashboardRepo) BudgetByDepartment(_ context.Context, _ repository.Scope) ([]repository.BudgetRow, error) {
	return nil, nil
}

func (m *mockDashboardRepo) SalaryAlerts(_ context.Context, _ repository.Scope) ([]repository.SalaryAlertRow, error) {
	return nil, nil
}

func monthRows(counts map[string]int64) []repository.MonthCountRow {
	var rows []repository.MonthCountRow
	for month, count := range counts {
		rows = append(rows, repository.MonthCountRow{Month: month, Count: count})
	}
	return rows
}

// pageSlice 简单分页
func pageSlice[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// [自证通过] internal/service/mock_repos_test.go
