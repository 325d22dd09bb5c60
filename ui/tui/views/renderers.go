package views

import (
	"ecosoap/ui/tui/state"
)

func RenderLogin(s state.AppState, props ViewProps) string {
	v := LoginView{}
	return v.Render(s, props)
}

func RenderHistory(s state.AppState, props ViewProps) string {
	v := PickupHistoryView{}
	return v.Render(s, props)
}

func RenderProfile(s state.AppState, props ViewProps) string {
	v := ProfileView{}
	return v.Render(s, props)
}
