// SPDX-License-Identifier: MPL-2.0

package main

import cmd "ivypub/cmd/ivypub"

func main() {
	cmd.Execute()
}
