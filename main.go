/*
 * cfan
 * Copyright (c) 2024. The cfan authors
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */
package main

import (
	"github.com/cfan/cfan/cmd"
	"github.com/cfan/cfan/internal/nvidia_base"
)

func main() {
	// the nvml session is only started by nvidia sensors and the detect command,
	// cleanup does nothing if it was never started
	defer nvidia_base.CleanupAtExit()
	cmd.Execute()
}
