package main

import "github.com/Klikmok/django-sprint4/web"

func main() {
	web.RunApp()
}
