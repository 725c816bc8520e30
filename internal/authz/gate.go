// Package authz — чистая политика доступа по классам роутов.
// Никакого I/O: решение — функция от (роль, класс роута, есть ли
// действующий доступ). HTTP-слой сам превращает решение в 401/403/redirect.
package authz

type RouteClass int

const (
	// Публичный каталог, без требований
	Public RouteClass = iota
	// Управление курсами/видео/доступами — только ADMIN
	AdminOnly
	// Страницы просмотра — нужен действующий доступ к курсу
	CourseContent
	// Логин/регистрация — залогиненных уводим по роли
	GuestOnly
)

type Decision int

const (
	Allow Decision = iota
	// Не аутентифицирован: на логин, с сохранением исходного URL
	RedirectLogin
	// Аутентифицирован, но нельзя: на безопасную заглавную,
	// без деталей о защищенном ресурсе
	RedirectForbidden
	// Для GuestOnly: увести залогиненного на его домашнюю
	RedirectHome
)

// Decide — вся таблица политик. role == "" означает анонима,
// entitled учитывается только для CourseContent.
func Decide(role string, class RouteClass, entitled bool) Decision {
	switch class {
	case Public:
		return Allow
	case GuestOnly:
		if role == "" {
			return Allow
		}
		return RedirectHome
	case AdminOnly:
		if role == "" {
			return RedirectLogin
		}
		if role != "ADMIN" {
			return RedirectForbidden
		}
		return Allow
	case CourseContent:
		if role == "" {
			return RedirectLogin
		}
		// Грант нужен всем, роль тут не привилегия
		if !entitled {
			return RedirectForbidden
		}
		return Allow
	}
	return RedirectForbidden
}

// HomeFor — куда уводить залогиненного с гостевых страниц
func HomeFor(role string) string {
	if role == "ADMIN" {
		return "/admin"
	}
	return "/courses"
}
