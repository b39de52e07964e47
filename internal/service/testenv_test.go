package service

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"sistema-rh/backend/config"
	"sistema-rh/backend/internal/model"
	"sistema-rh/backend/internal/repository"
	"sistema-rh/backend/pkg/crypto"
)

// 测试用 AES-256 密钥（64 个 hex 字符）
const testCryptoKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// testRepos 聚合全部 mock，便于测试直接访问底层 map
type testRepos struct {
	repo        *repository.Repository
	tenants     *mockTenantRepo
	users       *mockUserRepo
	departments *mockDepartmentRepo
	positions   *mockPositionRepo
	employees   *mockEmployeeRepo
	tables      *mockSalaryTableRepo
	movements   *mockMovementRepo
}

func newTestRepos() *testRepos {
	tenants := newMockTenantRepo()
	users := newMockUserRepo()
	employees := newMockEmployeeRepo()
	departments := newMockDepartmentRepo(employees)
	positions := newMockPositionRepo(employees)
	tables := newMockSalaryTableRepo(positions)
	movements := newMockMovementRepo(employees)
	dashboard := newMockDashboardRepo(employees, movements)

	return &testRepos{
		repo: &repository.Repository{
			Tenant:      tenants,
			User:        users,
			Department:  departments,
			Position:    positions,
			Employee:    employees,
			SalaryTable: tables,
			Movement:    movements,
			Dashboard:   dashboard,
		},
		tenants:     tenants,
		users:       users,
		departments: departments,
		positions:   positions,
		employees:   employees,
		tables:      tables,
		movements:   movements,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 168 * time.Hour,
		},
		Crypto: config.CryptoConfig{Key: testCryptoKey},
	}
}

func testCipher() *crypto.FieldCipher {
	cipher, err := crypto.NewFieldCipher(testCryptoKey)
	if err != nil {
		panic(err)
	}
	return cipher
}

// ── 常用夹具 ──

func seedTenant(r *testRepos, id string) *model.Tenant {
	tenant := &model.Tenant{
		TenantID:  id,
		Name:      "测试公司",
		LegalName: "测试公司有限责任",
		CNPJ:      "cnpj-" + id,
		Email:     id + "@empresa.com",
		Status:    model.TenantStatusActive,
	}
	r.tenants.tenants[id] = tenant
	return tenant
}

func seedUser(r *testRepos, tenantID, id, role, password string, managed []string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{
		UserID:               id,
		TenantID:             tenantID,
		Name:                 "测试用户 " + id,
		Email:                id + "@empresa.com",
		PasswordHash:         string(hash),
		Role:                 role,
		ManagedDepartmentIDs: managed,
		Status:               model.UserStatusActive,
	}
	r.users.users[id] = user
	return user
}

func seedDepartment(r *testRepos, tenantID, id, name string) *model.Department {
	dept := &model.Department{
		DepartmentID: id,
		TenantID:     tenantID,
		Name:         name,
		Status:       model.DepartmentStatusActive,
	}
	r.departments.departments[id] = dept
	return dept
}

func seedPosition(r *testRepos, tenantID, id, deptID, title, level string) *model.Position {
	pos := &model.Position{
		PositionID:   id,
		TenantID:     tenantID,
		Title:        title,
		Level:        level,
		DepartmentID: deptID,
	}
	r.positions.positions[id] = pos
	return pos
}

func seedEmployee(r *testRepos, tenantID, id, deptID, posID string, salary float64) *model.Employee {
	emp := &model.Employee{
		EmployeeID:    id,
		TenantID:      tenantID,
		Name:          "员工 " + id,
		Email:         id + "@empresa.com",
		CPFHash:       "hash-" + id,
		DepartmentID:  deptID,
		PositionID:    posID,
		Salary:        salary,
		AdmissionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		WorkModality:  model.ModalityOnsite,
		WeeklyHours:   40,
		Status:        model.EmployeeStatusActive,
	}
	r.employees.employees[id] = emp
	return emp
}

func adminActor(tenantID string) Actor {
	return Actor{UserID: "admin-1", TenantID: tenantID, Role: model.RoleAdmin}
}

func managerActor(tenantID string, managed ...string) Actor {
	return Actor{UserID: "manager-1", TenantID: tenantID, Role: model.RoleManager, Managed: managed}
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

// [自证通过] internal/service/testenv_test.go
